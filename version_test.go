package doctrans

import "testing"

func TestUserAgent(t *testing.T) {
	if got := UserAgent(); got != "doctrans/"+Version {
		t.Errorf("UserAgent() = %q", got)
	}
}
