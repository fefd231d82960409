package redis

import "testing"

func TestKeyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		prefix    string
		namespace string
		want      string
	}{
		{name: "prefix and namespace", prefix: "squadbets", namespace: "2024", want: "squadbets:2024:"},
		{name: "trims separators", prefix: " squadbets: ", namespace: ":2024", want: "squadbets:2024:"},
		{name: "namespace only", namespace: "default", want: "default:"},
		{name: "neither", want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := keyPrefix(tc.prefix, tc.namespace); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestKVStore_Key(t *testing.T) {
	t.Parallel()

	store := NewKVStore(nil, "squadbets", "default")
	if got := store.key("currentWeek"); got != "squadbets:default:currentWeek" {
		t.Fatalf("unexpected key: %q", got)
	}
}
