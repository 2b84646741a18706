package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio реализует IO поверх потоков ввода и вывода.
// Пароль читается без эха, если ввод - терминал.
type Stdio struct {
	in     *bufio.Reader
	out    io.Writer
	stdin  *os.File
	isTerm func(fd int) bool
}

// NewStdio создает IO для os.Stdin и os.Stdout
func NewStdio() IO {
	s := NewStdioWith(os.Stdin, os.Stdout)
	s.stdin = os.Stdin
	return s
}

// NewStdioWith создает IO для произвольных потоков
func NewStdioWith(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{
		in:     bufio.NewReader(in),
		out:    out,
		isTerm: term.IsTerminal,
	}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	return s.readLine()
}

func (s *Stdio) ReadPassword(prompt string) (string, error) {
	s.Printf("%s", prompt)

	if s.stdin != nil {
		fd := int(s.stdin.Fd())
		if s.isTerm(fd) {
			pwBytes, err := term.ReadPassword(fd)
			s.Println("")
			if err != nil {
				return "", err
			}
			return string(pwBytes), nil
		}
	}

	// Ввод перенаправлен: читаем строку как есть
	return s.readLine()
}

func (s *Stdio) readLine() (string, error) {
	input, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
