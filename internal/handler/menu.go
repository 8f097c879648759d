package handler

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
)

// ActionFunc runs one menu action against the console.
type ActionFunc func(ctx context.Context, c *Console) error

// errExit ends the menu loop.
var errExit = errors.New("exit")

type menuEntry struct {
	key    string
	label  string
	action ActionFunc
}

// Menu dispatches numbered choices to the registered actions and keeps going
// until Exit is chosen or input runs out.
type Menu struct {
	console *Console
	entries []menuEntry
}

func NewMenu(console *Console) *Menu {
	return &Menu{console: console}
}

// Handle registers an action. Entries are listed in registration order.
func (m *Menu) Handle(key, label string, action ActionFunc) {
	m.entries = append(m.entries, menuEntry{key: key, label: label, action: action})
}

// HandleExit registers the entry that leaves the loop.
func (m *Menu) HandleExit(key, label string) {
	m.Handle(key, label, func(_ context.Context, c *Console) error {
		c.Println("Exiting program...")
		return errExit
	})
}

func (m *Menu) prompt() string {
	var b strings.Builder
	b.WriteString("\nChoose an action:\n")
	for _, e := range m.entries {
		b.WriteString(e.key + ". " + e.label + "\n")
	}
	b.WriteString("> ")
	return b.String()
}

func (m *Menu) lookup(key string) (ActionFunc, bool) {
	for _, e := range m.entries {
		if e.key == key {
			return e.action, true
		}
	}
	return nil, false
}

// Run is the interactive loop. Action failures are reported and the menu is
// shown again; only Exit or end of input return.
func (m *Menu) Run(ctx context.Context) error {
	for {
		choice, err := m.console.Prompt(m.prompt())
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Println("Input closed, leaving menu")
				return nil
			}
			return err
		}

		action, ok := m.lookup(choice)
		if !ok {
			m.console.Println("Invalid action. Please try again.")
			continue
		}

		switch err := action(ctx, m.console); {
		case err == nil:
		case errors.Is(err, errExit):
			return nil
		case errors.Is(err, io.EOF):
			log.Println("Input closed during an action, leaving menu")
			return nil
		default:
			log.Printf("action %s failed: %v", choice, err)
			m.console.Printf("Error: %v\n", err)
		}
	}
}
