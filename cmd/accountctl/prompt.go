package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/sefazor/ourphotos-accounts/pkg/flow"
)

// repaintAbove rewrites the line above the cursor and puts the cursor back.
const repaintAbove = "\0337\033[1A\r\033[K  ! %s\0338"

// prompter reads answers line by line. Secrets are read without echo when
// the input is a terminal.
type prompter struct {
	in   *bufio.Reader
	fd   int
	term bool
	tick time.Duration

	mu  sync.Mutex
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out, fd: -1, tick: time.Second}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.term = true
	}
	return p
}

func (p *prompter) printf(format string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

func (p *prompter) line(label string) (string, error) {
	p.printf("%s: ", label)
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		p.printf("\n")
		return "", errAborted
	}
	return strings.TrimRight(s, "\r\n"), nil
}

func (p *prompter) secret(label string) (string, error) {
	if !p.term {
		return p.line(label)
	}
	p.printf("%s: ", label)
	b, err := term.ReadPassword(p.fd)
	p.printf("\n")
	if err != nil {
		return "", errAborted
	}
	return string(b), nil
}

func (p *prompter) say(format string, args ...interface{}) {
	p.printf(format+"\n", args...)
}

// alert prints msg when it is not empty.
func (p *prompter) alert(msg string) {
	if msg != "" {
		p.printf("  ! %s\n", msg)
	}
}

// liveLabel keeps the cooldown label printed on the line above the prompt
// current until stop is called or the countdown ends. It only runs on a
// terminal.
func (p *prompter) liveLabel(ctx context.Context, cd *flow.Cooldown) (stop func()) {
	if !p.term || !cd.Running() {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		cd.Watch(ctx, p.tick, func(time.Duration) {
			if label := cd.Label(); label != "" {
				p.printf(repaintAbove, label)
			}
		})
	}()
	return func() {
		cancel()
		<-done
	}
}
