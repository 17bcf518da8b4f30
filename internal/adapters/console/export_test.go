package console

// Stopped is closed once the line reader goroutine has exited.
func Stopped(c *Console) <-chan struct{} {
	return c.stopped
}
