package fop

// Source is the classified input of a dfop call.
// It is either a URLSource or a PathSource.
type Source interface {
	source()
}

// URLSource is a remote resource the service fetches itself.
type URLSource struct {
	URL string
}

// PathSource is a local file whose content is uploaded.
type PathSource struct {
	Path string
}

func (URLSource) source()  {}
func (PathSource) source() {}
