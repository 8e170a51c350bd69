package domain

import "strings"

// Samba records. Each office has its own Samba configuration, so most of
// these hang off an office as well as a company. They are independent of
// the host hierarchy.

// SambaGroup corresponds to a Linux group granting a Samba access level,
// e.g. users, marketing, company_wide. It must exist on the system before
// users are assigned to it.
type SambaGroup struct {
	ID        int64  `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	CompanyID int64  `json:"company_id" yaml:"company_id"`
	OfficeID  int64  `json:"office_id" yaml:"office_id"`
	GID       int    `json:"gid" yaml:"gid"`
}

// SambaUser is a Linux user with a Samba password
type SambaUser struct {
	ID        int64  `json:"id" yaml:"id"`
	Username  string `json:"username" yaml:"username"`
	SMBPasswd string `json:"-" yaml:"-"`
	UID       int    `json:"uid" yaml:"uid"`
	// Groups is the comma-separated list of SambaGroup names
	Groups    string `json:"groups" yaml:"groups"`
	CompanyID int64  `json:"company_id" yaml:"company_id"`
	OfficeID  int64  `json:"office_id" yaml:"office_id"`
}

// GroupList splits Groups into names, dropping blanks
func (u SambaUser) GroupList() []string {
	var groups []string
	for _, g := range strings.Split(u.Groups, ",") {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}

// SambaConfig holds the global section of a Samba server, itself a host
type SambaConfig struct {
	ID              int64  `json:"id" yaml:"id"`
	CompanyID       int64  `json:"company_id" yaml:"company_id"`
	User            string `json:"user" yaml:"user"`
	Group           string `json:"group" yaml:"group"`
	Interfaces      string `json:"interfaces" yaml:"interfaces"`
	HostsAllow      string `json:"hosts_allow" yaml:"hosts_allow"`
	LocalMaster     string `json:"local_master" yaml:"local_master"`
	PreferredMaster string `json:"preferred_master" yaml:"preferred_master"`
	SocketOptions   string `json:"socket_options,omitempty" yaml:"socket_options,omitempty"`
}

// SambaShare is a share on a Samba server
type SambaShare struct {
	ID        int64  `json:"id" yaml:"id"`
	CompanyID int64  `json:"company_id" yaml:"company_id"`
	Name      string `json:"name" yaml:"name"`
	Label     string `json:"label" yaml:"label"`
	Group     string `json:"group" yaml:"group"`
	Path      string `json:"path" yaml:"path"`
}
