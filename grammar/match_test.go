package grammar

import "testing"

func TestAllowed(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		allow []string
		skip  []string
		want  bool
	}{
		{
			name: "no filters admits",
			code: "recipe-dagger-copper",
			want: true,
		},
		{
			name:  "allow match",
			code:  "recipe-dagger-copper",
			allow: []string{"*copper*"},
			want:  true,
		},
		{
			name:  "allow miss",
			code:  "recipe-dagger-gold",
			allow: []string{"*copper*"},
			want:  false,
		},
		{
			name: "skip match",
			code: "recipe-dagger-gold",
			skip: []string{"*gold*"},
			want: false,
		},
		{
			name:  "skip beats allow",
			code:  "recipe-dagger-gold",
			allow: []string{"recipe-*"},
			skip:  []string{"*-gold"},
			want:  false,
		},
		{
			name: "exact skip",
			code: "shape-chest",
			skip: []string{"shape-chest"},
			want: false,
		},
		{
			name: "malformed pattern matches nothing",
			code: "recipe-dagger",
			skip: []string{"[recipe"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.code, tt.allow, tt.skip); got != tt.want {
				t.Errorf("Allowed(%q, %v, %v) = %v, want %v",
					tt.code, tt.allow, tt.skip, got, tt.want)
			}
		})
	}
}
