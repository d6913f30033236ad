// Package cloudwriter buffers an object in memory and uploads it to cloud
// storage when closed.
package cloudwriter

import "io"

type CloudWriter interface {
	io.WriteCloser
}

type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}
