package commands

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// ConnectionID
// --------------------------------------------------------------------------

type ConnectionID struct {
	Value string `json:"value"`
}

func (id *ConnectionID) DataStructureType() byte { return IDConnectionID }

func (id *ConnectionID) CacheKey() string { return id.Value }

func (id *ConnectionID) String() string { return id.Value }

// --------------------------------------------------------------------------
// SessionID
// --------------------------------------------------------------------------

type SessionID struct {
	ConnectionID string `json:"connectionId"`
	Value        int64  `json:"value"`
}

func (id *SessionID) DataStructureType() byte { return IDSessionID }

func (id *SessionID) CacheKey() string { return id.String() }

func (id *SessionID) String() string {
	return fmt.Sprintf("%s:%d", id.ConnectionID, id.Value)
}

// --------------------------------------------------------------------------
// ConsumerID
// --------------------------------------------------------------------------

type ConsumerID struct {
	ConnectionID string `json:"connectionId"`
	SessionID    int64  `json:"sessionId"`
	Value        int64  `json:"value"`
}

func (id *ConsumerID) DataStructureType() byte { return IDConsumerID }

func (id *ConsumerID) CacheKey() string { return id.String() }

func (id *ConsumerID) String() string {
	return fmt.Sprintf("%s:%d:%d", id.ConnectionID, id.SessionID, id.Value)
}

// ParseConsumerID parses "connection:session:value". The connection part may
// itself contain colons, only the last two segments are numeric.
func ParseConsumerID(s string) (*ConsumerID, error) {
	conn, session, value, err := splitID(s)
	if err != nil {
		return nil, fmt.Errorf("invalid consumer id %q: %w", s, err)
	}
	return &ConsumerID{ConnectionID: conn, SessionID: session, Value: value}, nil
}

// --------------------------------------------------------------------------
// ProducerID
// --------------------------------------------------------------------------

type ProducerID struct {
	ConnectionID string `json:"connectionId"`
	Value        int64  `json:"value"`
	SessionID    int64  `json:"sessionId"`
}

func (id *ProducerID) DataStructureType() byte { return IDProducerID }

func (id *ProducerID) CacheKey() string { return id.String() }

func (id *ProducerID) String() string {
	return fmt.Sprintf("%s:%d:%d", id.ConnectionID, id.SessionID, id.Value)
}

// ParseProducerID parses "connection:session:value"
func ParseProducerID(s string) (*ProducerID, error) {
	conn, session, value, err := splitID(s)
	if err != nil {
		return nil, fmt.Errorf("invalid producer id %q: %w", s, err)
	}
	return &ProducerID{ConnectionID: conn, SessionID: session, Value: value}, nil
}

// --------------------------------------------------------------------------
// BrokerID
// --------------------------------------------------------------------------

type BrokerID struct {
	Value string `json:"value"`
}

func (id *BrokerID) DataStructureType() byte { return IDBrokerID }

func (id *BrokerID) CacheKey() string { return id.Value }

// --------------------------------------------------------------------------
// MessageID
// --------------------------------------------------------------------------

type MessageID struct {
	ProducerID         *ProducerID `json:"producerId,omitempty"`
	ProducerSequenceID int64       `json:"producerSequenceId"`
	BrokerSequenceID   int64       `json:"brokerSequenceId"`
}

func (id *MessageID) DataStructureType() byte { return IDMessageID }

func (id *MessageID) String() string {
	if id.ProducerID == nil {
		return fmt.Sprintf("<nil>:%d", id.ProducerSequenceID)
	}
	return fmt.Sprintf("%s:%d", id.ProducerID, id.ProducerSequenceID)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// splitID splits "a:b:c" from the right into a string and two integers
func splitID(s string) (string, int64, int64, error) {
	last := strings.LastIndex(s, ":")
	if last <= 0 {
		return "", 0, 0, fmt.Errorf("expected connection:session:value")
	}
	mid := strings.LastIndex(s[:last], ":")
	if mid <= 0 {
		return "", 0, 0, fmt.Errorf("expected connection:session:value")
	}
	session, err := strconv.ParseInt(s[mid+1:last], 10, 64)
	if err != nil {
		return "", 0, 0, err
	}
	value, err := strconv.ParseInt(s[last+1:], 10, 64)
	if err != nil {
		return "", 0, 0, err
	}
	return s[:mid], session, value, nil
}
