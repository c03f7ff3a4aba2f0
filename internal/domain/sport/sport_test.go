package sport

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   Sport
	}{
		{name: "empty sample", labels: nil, want: Basketball},
		{name: "shared labels only", labels: []string{"Most Valuable Player", "All-Star"}, want: Basketball},
		{name: "football", labels: []string{"Most Valuable Player", "Offensive Player of the Year", "Defensive Rookie of the Year"}, want: Football},
		{name: "hockey case insensitive", labels: []string{"GOALIE OF THE YEAR", " playoffs mvp "}, want: Hockey},
		{name: "baseball majority", labels: []string{"Gold Glove", "Silver Slugger", "Sixth Man of the Year"}, want: Baseball},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.labels); got != tt.want {
				t.Fatalf("Detect() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if got, ok := Parse(" ZGMH "); !ok || got != Hockey {
		t.Fatalf("expected hockey, got %q ok=%v", got, ok)
	}
	if _, ok := Parse("curling"); ok {
		t.Fatalf("expected curling to be rejected")
	}
}

func TestVote(t *testing.T) {
	if _, votes := Vote([]string{"All-Star"}); votes != 0 {
		t.Fatalf("expected no votes for shared label, got %d", votes)
	}
	got, votes := Vote([]string{"Sixth Man of the Year", "Most Improved Player"})
	if got != Basketball || votes != 2 {
		t.Fatalf("Vote() = %s/%d, want basketball/2", got, votes)
	}
}
