package domain

// Connection is a peer relationship of a wallet
type Connection struct {
	ConnectionID string          `json:"connection_id"`
	State        ConnectionState `json:"state"`
	Label        string          `json:"label,omitempty"`
	DID          string          `json:"did,omitempty"`
	Created      string          `json:"created,omitempty"`
	Updated      string          `json:"updated,omitempty"`
}

// Active tells whether the connection reached its terminal state
func (c *Connection) Active() bool {
	return c.State == ConnectionActive || c.State == ConnectionCompleted
}

// Message is a basic message exchanged over a connection
type Message struct {
	ID        string `json:"id,omitempty"`
	Content   string `json:"content"`
	Inbound   bool   `json:"inbound"`
	Timestamp string `json:"timestamp"`
}
