package domain

// MirrorSpec describes one source to destination directory mirror
type MirrorSpec struct {
	Name        string
	Source      string
	Destination string
}

// MirrorResult describes the outcome of a single mirror
type MirrorResult struct {
	Spec          MirrorSpec
	SourceMissing bool
	FilesCopied   int
	DirsCreated   int
	BytesCopied   int64
}
