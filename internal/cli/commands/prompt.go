package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"PassKeeper/internal/config"

	"golang.org/x/term"
)

var (
	lines    *bufio.Reader
	linesSrc io.Reader
)

// lineReader возвращает общий буферизованный reader поверх In, чтобы
// последовательные приглашения не теряли уже прочитанные строки.
func lineReader() *bufio.Reader {
	if lines == nil || linesSrc != In {
		lines = bufio.NewReader(In)
		linesSrc = In
	}
	return lines
}

// readLine читает одну строку без завершающего перевода строки.
func readLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(Out, prompt)
	}
	s, err := lineReader().ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// readSecret читает секрет без эха, если ввод — терминал.
func readSecret(prompt string) (string, error) {
	if f, ok := In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(Out, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(Out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return readLine(prompt)
}

// masterPassword берёт мастер-пароль из PK_MASTER_PASSWORD или спрашивает его.
func masterPassword(cfg *config.Config) (string, error) {
	if cfg.MasterPassword != "" {
		return cfg.MasterPassword, nil
	}
	pw, err := readSecret("Master password: ")
	if err != nil {
		return "", fmt.Errorf("read master password: %w", err)
	}
	return pw, nil
}
