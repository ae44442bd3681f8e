package features

import (
	"strconv"
	"testing"
)

func TestBucketMatchesWebApp(t *testing.T) {
	// Values computed with the web app's hash function.
	tests := []struct {
		userID string
		name   Name
		want   int
	}{
		{"user-1", AIAssistant, 58},
		{"user-2", AIAssistant, 51},
		{"alice", NewDashboard, 33},
		{"bob", NewDashboard, 4},
		{"42", RealtimeNotifications, 22},
		{"", "a", 97},
		{"üser", NewDashboard, 71},
		{"😀", "x", 89},
	}
	for _, tt := range tests {
		if got := Bucket(tt.userID, tt.name); got != tt.want {
			t.Errorf("Bucket(%q, %q) = %d, want %d", tt.userID, tt.name, got, tt.want)
		}
	}
}

func TestBucketStableAndInRange(t *testing.T) {
	counts := make([]int, 10)
	for i := 0; i < 5000; i++ {
		user := "user-" + strconv.Itoa(i)
		b := Bucket(user, NewDashboard)
		if b < 0 || b >= 100 {
			t.Fatalf("bucket %d out of range for %s", b, user)
		}
		if again := Bucket(user, NewDashboard); again != b {
			t.Fatalf("bucket for %s changed: %d then %d", user, b, again)
		}
		counts[b/10]++
	}
	// Loose uniformity check: every decile gets a share.
	for i, c := range counts {
		if c < 250 {
			t.Errorf("decile %d got only %d of 5000 users", i, c)
		}
	}
}
