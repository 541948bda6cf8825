package source

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cleared-dev/smsledger/internal/model"
)

// BackupParser parses the XML written by the "SMS Backup & Restore" app.
type BackupParser struct{}

// smsInbox is the message type of received messages; sent and draft
// messages are never bank notifications.
const smsInbox = 1

type smses struct {
	XMLName  xml.Name    `xml:"smses"`
	Messages []backupSMS `xml:"sms"`
}

type backupSMS struct {
	Address string `xml:"address,attr"`
	Body    string `xml:"body,attr"`
	Date    string `xml:"date,attr"` // epoch milliseconds
	Type    int    `xml:"type,attr"`
}

// Format returns the parser name.
func (p *BackupParser) Format() string { return "smsbackup" }

// Extension returns the file extension handled.
func (p *BackupParser) Extension() string { return ".xml" }

// Parse reads an SMS backup and returns the inbox messages in file order.
func (p *BackupParser) Parse(r io.Reader) ([]model.RawMessage, error) {
	var doc smses
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("reading SMS backup: %w", err)
	}

	var msgs []model.RawMessage
	for i, s := range doc.Messages {
		if s.Type != smsInbox {
			continue
		}
		ms, err := strconv.ParseInt(s.Date, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sms %d: parsing date %q: %w", i+1, s.Date, err)
		}
		msgs = append(msgs, model.RawMessage{
			Sender:     s.Address,
			Body:       s.Body,
			ReceivedAt: time.UnixMilli(ms).UTC(),
		})
	}
	return msgs, nil
}
