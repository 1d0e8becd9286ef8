package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/MrEthical07/pmAuth/invite"
	"github.com/MrEthical07/pmAuth/router"
	"github.com/MrEthical07/pmAuth/session"
)

type userView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

func newUserView(u session.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role.String(), Status: u.Status.String()}
}

func (u userView) String() string {
	return fmt.Sprintf("%s <%s> %s %s", u.Name, u.Email, u.Role, u.Status)
}

type whoamiView struct {
	Authenticated bool      `json:"authenticated"`
	User          *userView `json:"user,omitempty"`
}

func newWhoamiView(sess session.Session) whoamiView {
	if !sess.Authenticated() {
		return whoamiView{}
	}
	u := newUserView(*sess.User)
	return whoamiView{Authenticated: true, User: &u}
}

func (w whoamiView) String() string {
	if !w.Authenticated {
		return "Not signed in"
	}
	return "Signed in as " + w.User.String()
}

type usersView []userView

func (v usersView) String() string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tSTATUS")
	for _, u := range v {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.Status)
	}
	_ = tw.Flush()
	return strings.TrimRight(b.String(), "\n")
}

type navView struct {
	Path       string `json:"path"`
	Action     string `json:"action"`
	View       string `json:"view,omitempty"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

func newNavView(res router.Result) navView {
	return navView{Path: res.Path, Action: res.Action.String(), View: string(res.View), RedirectTo: res.RedirectTo}
}

func (n navView) String() string {
	switch {
	case n.RedirectTo != "":
		return fmt.Sprintf("%s: %s to %s", n.Path, n.Action, n.RedirectTo)
	case n.View != "":
		return fmt.Sprintf("%s: %s %s", n.Path, n.Action, n.View)
	default:
		return fmt.Sprintf("%s: %s", n.Path, n.Action)
	}
}

type menuView []router.MenuItem

func (m menuView) String() string {
	lines := make([]string, 0, len(m))
	for _, item := range m {
		lines = append(lines, item.Title+"\t"+item.Path)
	}
	return strings.Join(lines, "\n")
}

type linkView struct {
	URL   string `json:"url"`
	Path  string `json:"path"`
	Token string `json:"token,omitempty"`
}

func newLinkView(l invite.Link) linkView {
	return linkView{URL: l.URL, Path: l.Path, Token: l.Token}
}

func (l linkView) String() string {
	return l.URL
}

type redemptionView struct {
	Phase     string `json:"phase"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	NextRoute string `json:"next_route,omitempty"`
}

func newRedemptionView(st invite.State) redemptionView {
	return redemptionView{Phase: st.Phase.String(), Email: st.Email, Role: st.Role.String(), NextRoute: st.NextRoute}
}

func (r redemptionView) String() string {
	if r.NextRoute != "" {
		return fmt.Sprintf("Registered %s. Sign in at %s", r.Email, r.NextRoute)
	}
	if r.Email != "" {
		return fmt.Sprintf("%s: %s (%s)", r.Phase, r.Email, r.Role)
	}
	return r.Phase
}

type messageView struct {
	Message string `json:"message"`
}

func (m messageView) String() string {
	return m.Message
}
