package parser

// Source is the raw token collaborator. NextToken never blocks; at end of
// input it returns TokenEOF, repeatedly.
type Source interface {
	NextToken() Token
	Reset()
}

// Queue buffers raw tokens so the classifiers can look ahead without
// consuming. Tokens leave the queue only through ConsumeFront, in the
// order they were pulled.
type Queue struct {
	src  Source
	buf  []Token
	head int
}

func NewQueue(src Source) *Queue {
	return &Queue{src: src}
}

// Pull appends one token from the source.
func (q *Queue) Pull() {
	q.buf = append(q.buf, q.src.NextToken())
}

// Peek returns the token depth positions from the front, pulling as
// needed.
func (q *Queue) Peek(depth int) Token {
	for q.Len() <= depth {
		q.Pull()
	}
	return q.buf[q.head+depth]
}

// ConsumeFront removes and returns the front token.
func (q *Queue) ConsumeFront() Token {
	if q.Len() == 0 {
		q.Pull()
	}
	tok := q.buf[q.head]
	q.buf[q.head] = Token{}
	q.head++
	if q.head == len(q.buf) {
		q.buf = q.buf[:0]
		q.head = 0
	} else if q.head >= 64 && q.head*2 >= len(q.buf) {
		n := copy(q.buf, q.buf[q.head:])
		q.buf = q.buf[:n]
		q.head = 0
	}
	return tok
}

// Len is the number of buffered, unconsumed tokens.
func (q *Queue) Len() int {
	return len(q.buf) - q.head
}

// Reset drops buffered tokens and restarts the source.
func (q *Queue) Reset() {
	q.buf = nil
	q.head = 0
	q.src.Reset()
}
