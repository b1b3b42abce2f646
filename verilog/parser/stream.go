package parser

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tliron/commonlog"
)

const DefaultChunkSize = 4096

var ErrStreamClosed = errors.New("stream closed")

var log = commonlog.GetLogger("verilox.parser")

// Stream parses a sequence of items from input that arrives in pieces. Each
// completed item is committed; an item cut off by the end of the buffered
// bytes is retried from its first byte once more bytes are written, so
// nothing before it is scanned again.
type Stream struct {
	item    Func[Node]
	start   Input
	pending Input
	items   []Node
	needed  int
	closed  bool
	err     error
}

func NewStream(src *Source, item Func[Node]) *Stream {
	in := NewInput("", WithSource(src))
	return &Stream{item: item, start: in, pending: in, needed: 1}
}

// NewSourceTextStream parses the items of a compilation unit.
func NewSourceTextStream(src *Source) *Stream {
	return NewStream(src, parseSourceTextItem)
}

// NewLexicalStream parses white space, comments and identifiers.
func NewLexicalStream(src *Source) *Stream {
	return NewStream(src, ParseLexicalItem)
}

func (s *Stream) Source() *Source {
	return s.start.Source()
}

// Write buffers p and parses as many items as the buffered bytes decide.
// It returns the first parse failure; the stream accepts no input after it.
func (s *Stream) Write(p []byte) (int, error) {
	return s.WriteString(string(p))
}

func (s *Stream) WriteString(text string) (int, error) {
	if s.closed {
		return 0, ErrStreamClosed
	}
	if s.err != nil {
		return 0, s.err
	}
	s.pending = s.pending.Extend(text)
	s.advance()
	return len(text), s.err
}

// Close marks the end of the source and parses the remaining bytes.
func (s *Stream) Close() error {
	if s.closed {
		return s.err
	}
	s.closed = true
	if s.err != nil {
		return s.err
	}
	s.pending = s.pending.Finish()
	s.advance()
	return s.err
}

func (s *Stream) advance() {
	for s.err == nil {
		if s.pending.Len() == 0 {
			s.needed = 1
			if s.pending.Final() {
				s.needed = 0
			}
			return
		}
		item, rest, err := s.item(s.pending)
		if needed, ok := IsIncomplete(err); ok {
			log.Debugf("%s: waiting for %d more byte(s) at offset %d", s.Source().Path(), needed, s.pending.Offset())
			s.needed = needed
			return
		}
		if err != nil {
			s.err = err
			return
		}
		if rest.Offset() == s.pending.Offset() {
			s.err = fmt.Errorf("%s: %s made no progress", s.pending.Point(), item.Kind())
			return
		}
		s.items = append(s.items, item)
		s.pending = rest
	}
}

// Needed returns a lower bound on the bytes required before the stream can
// make progress, or 0 once the stream is closed.
func (s *Stream) Needed() int {
	return s.needed
}

func (s *Stream) Err() error {
	return s.err
}

// Items returns the items committed so far.
func (s *Stream) Items() []Node {
	return s.items
}

// Offset returns the offset of the first byte not yet committed to an item.
func (s *Stream) Offset() int {
	return s.pending.Offset()
}

// Tree returns the committed items under a SourceText root. It returns nil
// until the stream has been closed without error.
func (s *Stream) Tree() *SourceText {
	if !s.closed || s.err != nil {
		return nil
	}
	return newSourceText(s.start, s.pending, s.items)
}

// Drive reads r until EOF, writing to s in chunks of at least chunkSize bytes
// (more when s needs more to make progress), then closes s.
func Drive(ctx context.Context, r io.Reader, s *Stream, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		want := max(chunkSize, s.Needed())
		if len(buf) < want {
			buf = make([]byte, want)
		}
		n, err := r.Read(buf[:want])
		if n > 0 {
			if _, werr := s.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			log.Debugf("%s: end of source after %d item(s)", s.Source().Path(), len(s.items))
			return s.Close()
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", s.Source().Path(), err)
		}
	}
}
