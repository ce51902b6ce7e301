package ws

import "sort"

// Registry tracks which identity owns which sockets plus the global
// presence set. Both directions are indexed so a disconnect is O(1)
// instead of a scan over every namespace.
//
// Not goroutine-safe on its own; the gateway mutex serializes access.
type Registry struct {
	identities map[*Client]Identity
	sessions   map[Identity][]*Client
	online     map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		identities: make(map[*Client]Identity),
		sessions:   make(map[Identity][]*Client),
		online:     make(map[string]struct{}),
	}
}

// Register binds a socket to its identity and marks the member online.
func (reg *Registry) Register(c *Client) {
	id := c.Identity()
	reg.identities[c] = id
	reg.sessions[id] = append(reg.sessions[id], c)
	reg.online[id.MemberName] = struct{}{}
}

// Unregister removes the socket. It reports the socket's identity and
// whether that identity has no sockets left, in which case the member
// is also dropped from the presence set.
func (reg *Registry) Unregister(c *Client) (Identity, bool) {
	id, ok := reg.identities[c]
	if !ok {
		return Identity{}, false
	}
	delete(reg.identities, c)

	clients := reg.sessions[id]
	for i, other := range clients {
		if other == c {
			clients = append(clients[:i], clients[i+1:]...)
			break
		}
	}

	if len(clients) > 0 {
		reg.sessions[id] = clients
		return id, false
	}

	delete(reg.sessions, id)
	delete(reg.online, id.MemberName)
	return id, true
}

// OnlineMembers returns every online member name, sorted for stable
// output. Presence is global, not scoped to a guild: the online query
// answers with this full set no matter which guild asked.
func (reg *Registry) OnlineMembers() []string {
	names := make([]string, 0, len(reg.online))
	for name := range reg.online {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GuildConnected reports whether any socket of the guild is registered.
func (reg *Registry) GuildConnected(guildName string) bool {
	for id := range reg.sessions {
		if id.GuildName == guildName {
			return true
		}
	}
	return false
}

// GuildClients returns every socket whose identity is in the guild.
func (reg *Registry) GuildClients(guildName string) []*Client {
	var clients []*Client
	for id, socks := range reg.sessions {
		if id.GuildName == guildName {
			clients = append(clients, socks...)
		}
	}
	return clients
}
