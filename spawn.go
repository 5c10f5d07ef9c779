package actor

// SpawnRequest is the Send-safe descriptor stolen by workers. It carries
// an already-constructed PCB - inserted into the
// process table synchronously by Scheduler.Spawn, before the request is
// ever enqueued - so that Register/Link/Send against a freshly spawned PID
// work correctly even if called before any worker has picked the request
// up. Unlike a Coroutine, a SpawnRequest carries no goroutine and no
// channels, so it is freely movable between the scheduler's injector, a
// worker's local deque, and a stealing peer; the worker that ultimately
// claims it is the one that calls newCoroutine and attaches it to PCB,
// and the resulting Coroutine never leaves that worker.
type SpawnRequest struct {
	PCB  *PCB
	Body Body
}
