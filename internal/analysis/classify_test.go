package analysis

import "testing"

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "doordash by name",
			text: "Your DoorDash account has been deactivated.",
			want: "DoorDash",
		},
		{
			name: "doordash by dasher keyword",
			text: "Dear Dasher, we are writing to inform you...",
			want: "DoorDash",
		},
		{
			name: "case insensitive",
			text: "YOUR UBER ACCOUNT HAS BEEN DEACTIVATED",
			want: "Uber",
		},
		{
			name: "amazon flex full phrase",
			text: "Your Amazon Flex delivery partner account is suspended.",
			want: "Amazon Flex",
		},
		{
			name: "bare flex keyword",
			text: "Your Flex account access has been revoked.",
			want: "Amazon Flex",
		},
		{
			name: "shipt",
			text: "shipt shopper account review",
			want: "Shipt",
		},
		{
			name: "grubhub",
			text: "Grubhub delivery partner agreement terminated",
			want: "Grubhub",
		},
		{
			name: "no match",
			text: "Your account has been deactivated.",
			want: UnknownPlatform,
		},
		{
			name: "empty text",
			text: "",
			want: UnknownPlatform,
		},
		{
			// List order decides ambiguity: "uber" is checked before "lyft".
			name: "uber wins over lyft",
			text: "I drive for both lyft and uber",
			want: "Uber",
		},
		{
			name: "doordash wins over uber",
			text: "uber eats is not doordash",
			want: "DoorDash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectPlatform(tt.text); got != tt.want {
				t.Errorf("DetectPlatform(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCategorizeReason(t *testing.T) {
	tests := []struct {
		reason string
		want   string
	}{
		{"Customer rating below minimum", "ratings"},
		{"One-star reviews from customers", "ratings"},
		{"Safety incident reported", "safety"},
		{"Unsafe driving behavior", "safety"},
		{"Suspected fraud on account", "fraud"},
		{"Stolen order reported", "fraud"},
		{"Completion rate below 80%", "completion"},
		{"Excessive order cancellations", "completion"},
		{"Violation of terms", "unknown"},
		{"", "unknown"},
		// Safety is checked before ratings.
		{"Safety incident affecting your rating", "safety"},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			if got := CategorizeReason(tt.reason); got != tt.want {
				t.Errorf("CategorizeReason(%q) = %q, want %q", tt.reason, got, tt.want)
			}
		})
	}
}
