package actor

import (
	"encoding/binary"
	"math"
)

// ExitSignalTag is the reserved type_tag value marking a message as an
// exit signal rather than user data. It must never collide with a
// user-chosen tag, hence the all-ones sentinel.
const ExitSignalTag uint64 = math.MaxUint64

// Message is the ABI-observable in-memory layout of a mailbox entry:
//
//	[u64 type_tag][u64 data_len][u8 data[data_len]]
//
// naturally aligned and allocated in the receiver's heap. It is constructed
// once per delivery by DeepCopyTo; the sender's own copy (if any) is never
// aliased.
type Message struct {
	TypeTag uint64
	Data    []byte
}

// NewMessage builds a user message with the given tag and payload. tag must
// not be ExitSignalTag; that value is reserved for the runtime's own exit
// signals.
func NewMessage(tag uint64, data []byte) Message {
	if tag == ExitSignalTag {
		panic("actor: type_tag MAX_U64 is reserved for exit signals")
	}
	return Message{TypeTag: tag, Data: data}
}

// IsExitSignal reports whether m carries a runtime exit signal rather than
// user data.
func (m Message) IsExitSignal() bool {
	return m.TypeTag == ExitSignalTag
}

// headerSize is sizeof({type_tag, data_len}) per the ABI layout.
const headerSize = 16

// DeepCopyTo allocates sizeof(header)+len(m.Data) bytes in target, writes
// the header and payload, and returns the new, independent buffer. After
// this call the receiver owns the returned bytes; m.Data is never read
// again by the sender's side of the transfer.
func (m Message) DeepCopyTo(target *Heap) []byte {
	buf := target.Alloc(headerSize+len(m.Data), 8)
	binary.LittleEndian.PutUint64(buf[0:8], m.TypeTag)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(len(m.Data)))
	copy(buf[headerSize:], m.Data)
	return buf
}

// DecodeMessage reads a Message back out of a buffer previously produced by
// DeepCopyTo. It is the inverse operation used by actor_receive at the ABI
// boundary, where callers only have a raw pointer/length into their heap.
func DecodeMessage(buf []byte) Message {
	if len(buf) < headerSize {
		panic("actor: message buffer too short")
	}
	tag := binary.LittleEndian.Uint64(buf[0:8])
	n := binary.LittleEndian.Uint64(buf[8:16])
	return Message{TypeTag: tag, Data: buf[headerSize : headerSize+int(n)]}
}

// encodeExitReason serializes an ExitReason into the `payload` half of an
// exit-signal message: {exiter_pid u64}{kind_discriminant u8}{reason bytes}.
// This pins one of the open questions (exit-reason wire encoding),
// recorded in DESIGN.md.
func encodeExitReason(exiter ProcessID, reason ExitReason) []byte {
	buf := make([]byte, 0, 32)
	var pidBuf [8]byte
	binary.LittleEndian.PutUint64(pidBuf[:], uint64(exiter))
	buf = append(buf, pidBuf[:]...)
	buf = appendExitReason(buf, reason)
	return buf
}

func appendExitReason(buf []byte, reason ExitReason) []byte {
	buf = append(buf, byte(reason.Kind))
	switch reason.Kind {
	case ExitError:
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(reason.Message)))
		buf = append(buf, lenBuf[:]...)
		buf = append(buf, reason.Message...)
	case ExitLinked:
		var pidBuf [8]byte
		binary.LittleEndian.PutUint64(pidBuf[:], uint64(reason.ExiterPID))
		buf = append(buf, pidBuf[:]...)
		if reason.Cause != nil {
			buf = appendExitReason(buf, *reason.Cause)
		} else {
			buf = appendExitReason(buf, Normal())
		}
	}
	return buf
}

// decodeExitReason is the inverse of encodeExitReason, returning the
// exiting PID, the reason, and the number of bytes consumed.
func decodeExitReason(buf []byte) (exiter ProcessID, reason ExitReason, n int) {
	exiter = ProcessID(binary.LittleEndian.Uint64(buf[0:8]))
	reason, consumed := decodeReason(buf[8:])
	return exiter, reason, 8 + consumed
}

func decodeReason(buf []byte) (ExitReason, int) {
	kind := ExitKind(buf[0])
	switch kind {
	case ExitNormal, ExitKilled:
		return ExitReason{Kind: kind}, 1
	case ExitError:
		n := int(binary.LittleEndian.Uint32(buf[1:5]))
		msg := string(buf[5 : 5+n])
		return ExitReason{Kind: ExitError, Message: msg}, 5 + n
	case ExitLinked:
		exiter := ProcessID(binary.LittleEndian.Uint64(buf[1:9]))
		cause, n := decodeReason(buf[9:])
		return ExitReason{Kind: ExitLinked, ExiterPID: exiter, Cause: &cause}, 9 + n
	default:
		return ExitReason{}, 1
	}
}
