package migrate

import "testing"

func TestPrepareURLForDB(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain", "postgresql://u:p@db:5432/raceiq", "postgresql://u:p@db:5432/raceiq?sslmode=disable"},
		{"other params", "postgres://db/raceiq?x=1", "postgres://db/raceiq?x=1&sslmode=disable"},
		{"sslmode given", "postgres://db/raceiq?sslmode=require", "postgres://db/raceiq?sslmode=require"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prepareURLForDB(tt.url); got != tt.want {
				t.Errorf("prepareURLForDB() = %v, want %v", got, tt.want)
			}
		})
	}
}
