package router

import (
	"testing"

	"github.com/MrEthical07/pmAuth/permission"
	"github.com/MrEthical07/pmAuth/session"
)

func signedIn(role permission.Role) session.Session {
	return session.Session{
		Token: "tok",
		User:  &session.User{ID: "u1", Name: "Ann", Role: role, Status: permission.StatusActive},
	}
}

func TestUnauthenticatedDashboardRedirectsToLogin(t *testing.T) {
	res := Default().Navigate(session.Session{}, PathDashboard)
	if res.Action != ActionRedirect || res.RedirectTo != PathLogin || !res.Replace {
		t.Fatalf("result = %+v", res)
	}
}

func TestStaffAdminUsersDenied(t *testing.T) {
	res := Default().Navigate(signedIn(permission.RoleStaff), PathAdminUsers)
	if res.Action != ActionDenied || res.RedirectTo != "" {
		t.Fatalf("result = %+v", res)
	}
}

func TestAdminReachesAdminUsers(t *testing.T) {
	res := Default().Navigate(signedIn(permission.RoleAdmin), PathAdminUsers)
	if res.Action != ActionRender || res.View != ViewAdminUsers {
		t.Fatalf("result = %+v", res)
	}
}

func TestAdminUsersChecksAuthenticationFirst(t *testing.T) {
	res := Default().Navigate(session.Session{}, PathAdminUsers)
	if res.Action != ActionRedirect || res.RedirectTo != PathLogin {
		t.Fatalf("result = %+v", res)
	}
}

func TestLoadingSessionIsPending(t *testing.T) {
	for _, p := range []string{PathDashboard, PathAdminUsers, PathRoot} {
		res := Default().Navigate(session.Session{Loading: true}, p)
		if res.Action != ActionPending {
			t.Fatalf("%s: result = %+v", p, res)
		}
	}
}

func TestPublicRoutesRenderWithoutSession(t *testing.T) {
	res := Default().Navigate(session.Session{Loading: true}, "/register?token=abc")
	if res.Action != ActionRender || res.View != ViewRegister {
		t.Fatalf("result = %+v", res)
	}
	if res.Query.Get("token") != "abc" {
		t.Fatalf("token = %q", res.Query.Get("token"))
	}
	if res := Default().Navigate(session.Session{}, PathLogin); res.Action != ActionRender || res.View != ViewLogin {
		t.Fatalf("login result = %+v", res)
	}
}

func TestRootForwardsToDashboard(t *testing.T) {
	tbl := Default()
	res := tbl.Navigate(signedIn(permission.RoleStaff), PathRoot)
	if res.Action != ActionRedirect || res.RedirectTo != PathDashboard || !res.Replace {
		t.Fatalf("result = %+v", res)
	}
	final := tbl.Follow(signedIn(permission.RoleStaff), "")
	if final.Action != ActionRender || final.View != ViewDashboard {
		t.Fatalf("followed = %+v", final)
	}
	if res := tbl.Navigate(session.Session{}, PathRoot); res.RedirectTo != PathLogin {
		t.Fatalf("unauthenticated root = %+v", res)
	}
}

func TestUnknownPathRedirectsToLogin(t *testing.T) {
	for _, p := range []string{"/nope", "/admin", "/dashboard/extra"} {
		res := Default().Navigate(signedIn(permission.RoleAdmin), p)
		if res.Found || res.Action != ActionRedirect || res.RedirectTo != PathLogin || !res.Replace {
			t.Fatalf("%s: result = %+v", p, res)
		}
	}
}

func TestNormalization(t *testing.T) {
	tbl := Default()
	if _, ok := tbl.Lookup("admin/users/"); !ok {
		t.Fatalf("expected normalized lookup to match")
	}
	if res := tbl.Navigate(signedIn(permission.RoleStaff), "/dashboard/"); res.View != ViewDashboard {
		t.Fatalf("result = %+v", res)
	}
}

func TestMenuFollowsGuard(t *testing.T) {
	tbl := Default()

	if items := tbl.Menu(session.Session{}); len(items) != 0 {
		t.Fatalf("anonymous menu = %+v", items)
	}
	staff := tbl.Menu(signedIn(permission.RoleStaff))
	if len(staff) != 1 || staff[0].Path != PathDashboard || staff[0].Title != "Projects" {
		t.Fatalf("staff menu = %+v", staff)
	}
	admin := tbl.Menu(signedIn(permission.RoleAdmin))
	if len(admin) != 2 || admin[1].Path != PathAdminUsers || admin[1].Title != "User Management" {
		t.Fatalf("admin menu = %+v", admin)
	}
}

func TestDecisionIsRecomputed(t *testing.T) {
	tbl := Default()
	sess := signedIn(permission.RoleAdmin)
	if res := tbl.Navigate(sess, PathAdminUsers); res.Action != ActionRender {
		t.Fatalf("result = %+v", res)
	}
	sess.User.Role = permission.RoleStaff
	if res := tbl.Navigate(sess, PathAdminUsers); res.Action != ActionDenied {
		t.Fatalf("result after demotion = %+v", res)
	}
}

func TestRegisterPath(t *testing.T) {
	if got := RegisterPath("a b"); got != "/register?token=a+b" {
		t.Fatalf("RegisterPath = %q", got)
	}
	if got := RegisterPath(""); got != PathRegister {
		t.Fatalf("RegisterPath = %q", got)
	}
}
