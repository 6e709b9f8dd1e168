package catalog

// UploadedFile is a file received from a caller, e.g. a multipart form part.
type UploadedFile interface {
	Name() string
	Bytes() ([]byte, error)
}

type memoryFile struct {
	name string
	data []byte
}

// NewUploadedFile wraps in-memory content as an UploadedFile.
func NewUploadedFile(name string, data []byte) UploadedFile {
	return memoryFile{name: name, data: data}
}

func (f memoryFile) Name() string           { return f.name }
func (f memoryFile) Bytes() ([]byte, error) { return f.data, nil }
