package ws

// Identity is the namespace key declared at handshake time. The two
// fields are opaque strings owned by the member CRUD service.
type Identity struct {
	GuildName  string
	MemberName string
}

// Client is one live socket. A member may hold several (multiple tabs),
// all sharing the same Identity. Outbound frames are queued on messc;
// closeSlow tears the connection down when the queue overflows.
type Client struct {
	identity  Identity
	messc     chan []byte
	closeSlow func()
}

func NewClient(identity Identity, messc chan []byte, closeSlow func()) *Client {
	return &Client{
		identity:  identity,
		messc:     messc,
		closeSlow: closeSlow,
	}
}

func (c *Client) Identity() Identity { return c.identity }
