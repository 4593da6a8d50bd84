package huffman

import (
	"bytes"
	"io"
	"sync"
)

// CompressionWriter collects everything written to it and emits the
// compressed stream to the underlying writer on Close.
type CompressionWriter struct {
	w      io.Writer
	opts   []Option
	buf    bytes.Buffer
	closed bool
}

func NewCompressionWriter(writer io.Writer, opts ...Option) io.WriteCloser {
	return &CompressionWriter{w: writer, opts: opts}
}

func (cw *CompressionWriter) Write(data []byte) (int, error) {
	if cw.closed {
		return 0, io.ErrClosedPipe
	}
	return cw.buf.Write(data)
}

func (cw *CompressionWriter) Close() error {
	if cw.closed {
		return nil
	}
	cw.closed = true
	compressed, err := Compress(cw.buf.Bytes(), cw.opts...)
	if err != nil {
		return err
	}
	cw.buf.Reset()
	_, err = cw.w.Write(compressed)
	return err
}

type decompressionCore struct {
	isInputBufferClosed bool
	lock                sync.Mutex
	opts                []Option
	inputBuffer         bytes.Buffer
	outputBuffer        bytes.Buffer
}

type DecompressionWriter struct {
	core *decompressionCore
}

type DecompressionReader struct {
	core *decompressionCore
}

// NewDecompressionReaderAndWriter returns a pair sharing one buffer:
// compressed bytes go into the writer, and once the writer is closed the
// reader yields the decompressed content.
func NewDecompressionReaderAndWriter(opts ...Option) (io.ReadCloser, io.WriteCloser) {
	core := &decompressionCore{opts: opts}
	return &DecompressionReader{core: core}, &DecompressionWriter{core: core}
}

func (dw *DecompressionWriter) Write(data []byte) (int, error) {
	dw.core.lock.Lock()
	defer dw.core.lock.Unlock()
	if dw.core.isInputBufferClosed {
		return 0, io.ErrClosedPipe
	}
	return dw.core.inputBuffer.Write(data)
}

func (dw *DecompressionWriter) Close() error {
	dw.core.lock.Lock()
	defer dw.core.lock.Unlock()
	if dw.core.isInputBufferClosed {
		return nil
	}
	dw.core.isInputBufferClosed = true
	decompressed, err := Decompress(dw.core.inputBuffer.Bytes(), dw.core.opts...)
	dw.core.inputBuffer.Reset()
	if err != nil {
		return err
	}
	_, err = dw.core.outputBuffer.Write(decompressed)
	return err
}

func (dr *DecompressionReader) Read(data []byte) (int, error) {
	dr.core.lock.Lock()
	defer dr.core.lock.Unlock()
	if !dr.core.isInputBufferClosed {
		return 0, ErrInputNotClosed
	}
	return dr.core.outputBuffer.Read(data)
}

func (dr *DecompressionReader) Close() error {
	dr.core.lock.Lock()
	defer dr.core.lock.Unlock()
	dr.core.outputBuffer.Reset()
	return nil
}
