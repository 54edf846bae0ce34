package httpserver

// SetUploadMemory lowers the in-memory multipart limit so uploads spill to disk.
func SetUploadMemory(n int64) (restore func()) {
	old := maxUploadMemory
	maxUploadMemory = n
	return func() { maxUploadMemory = old }
}
