package nav

import "testing"

func TestCommandConstructors(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want Command
	}{
		{"back", Back(2), Command{Kind: KindJump, Steps: -2}},
		{"forward", Forward(3), Command{Kind: KindJump, Steps: 3}},
		{"new_url", NewURL("/a?q=1"), Command{Kind: KindPushURL, URL: "/a?q=1"}},
		{"modify_url", ModifyURL("/b"), Command{Kind: KindReplaceURL, URL: "/b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cmd != tt.want {
				t.Errorf("got %+v, want %+v", tt.cmd, tt.want)
			}
		})
	}
}

func TestCommandString(t *testing.T) {
	if got := Back(1).String(); got != "Jump(-1)" {
		t.Errorf("Back(1).String() = %q", got)
	}
	if got := NewURL("/x").String(); got != `PushURL("/x")` {
		t.Errorf("NewURL(/x).String() = %q", got)
	}
	if got := ModifyURL("/y").String(); got != `ReplaceURL("/y")` {
		t.Errorf("ModifyURL(/y).String() = %q", got)
	}
}
