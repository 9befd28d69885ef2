package main

import (
	"log"
	"strings"

	"github.com/pkg/browser"
	"golang.design/x/clipboard"
)

// sharer moves share links through the system clipboard and browser.
type sharer struct {
	clipboardOK bool
}

func newSharer() *sharer {
	s := &sharer{}
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		s.clipboardOK = true
	}
	return s
}

// publish copies link and opens it, returning a status line.
func (s *sharer) publish(link string) string {
	status := "share link ready"
	if s.clipboardOK {
		clipboard.Write(clipboard.FmtText, []byte(link))
		status = "share link copied"
	}
	if err := browser.OpenURL(link); err != nil {
		log.Printf("open share link: %v", err)
	}
	log.Println(link)
	return status
}

func (s *sharer) paste() (string, bool) {
	if !s.clipboardOK {
		return "", false
	}
	link := strings.TrimSpace(string(clipboard.Read(clipboard.FmtText)))
	return link, link != ""
}
