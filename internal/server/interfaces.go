package server

// Server is the lifecycle contract the entrypoint drives.
//
// RunServer blocks until the server stops; Shutdown asks for a graceful stop
// and releases resources.
type Server interface {
	RunServer()
	Shutdown()
}
