package classifier

import "github.com/soltree-games/scorekeeper/internal/engine/catalog"

// ChannelRole is the scoring role a channel plays, resolved once at startup
// instead of string-matching channel names per message.
type ChannelRole int

// Channel roles, in dispatch precedence order.
const (
	RoleUnknown ChannelRole = iota
	RoleBounty
	RoleGeneral
	RoleQuest
	RoleGovernance
)

// String returns the role name for logging.
func (r ChannelRole) String() string {
	switch r {
	case RoleBounty:
		return "bounty"
	case RoleGeneral:
		return "general"
	case RoleQuest:
		return "quest"
	case RoleGovernance:
		return "governance"
	default:
		return "unknown"
	}
}

// Roles maps channel names to their resolved scoring role.
type Roles struct {
	byChannel map[string]ChannelRole
}

// ResolveRoles assigns every known channel name its role. A name claimed by
// more than one source keeps the highest-precedence role: bounty titles win
// over general channels, which win over quest titles, which win over the
// governance channel.
func ResolveRoles(generalChannels []string, governanceChannel string, cat *catalog.Catalog) *Roles {
	roles := &Roles{byChannel: make(map[string]ChannelRole)}

	if governanceChannel != "" {
		roles.byChannel[governanceChannel] = RoleGovernance
	}
	for _, title := range cat.QuestTitles() {
		roles.byChannel[title] = RoleQuest
	}
	for _, name := range generalChannels {
		roles.byChannel[name] = RoleGeneral
	}
	for _, title := range cat.BountyTitles() {
		roles.byChannel[title] = RoleBounty
	}

	return roles
}

// Role returns the role for a channel name, RoleUnknown when unconfigured.
func (r *Roles) Role(channel string) ChannelRole {
	return r.byChannel[channel]
}
