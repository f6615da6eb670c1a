package domain

import "testing"

func TestParseOpportunityStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want OpportunityStatus
	}{
		{"NO WEBSITE", OpportunityNoWebsite},
		{"no_website", OpportunityNoWebsite},
		{"NO WEBSITE \U0001F534", OpportunityNoWebsite},
		{"BROKEN WEBSITE", OpportunityBrokenWebsite},
		{"NOT MOBILE FRIENDLY", OpportunityNotMobile},
		{"MOBILE FRIENDLY \U0001F7E2", OpportunityMobileFriendly},
		{"Mobile-Friendly", OpportunityMobileFriendly},
		{"SOCIAL ONLY \U0001F7E1", OpportunitySocialOnly},
	}

	for _, tc := range cases {
		got, ok := ParseOpportunityStatus(tc.raw)
		if !ok {
			t.Fatalf("ParseOpportunityStatus(%q) not recognized", tc.raw)
		}
		if got != tc.want {
			t.Errorf("ParseOpportunityStatus(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestParseOpportunityStatus_RejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "GREAT WEBSITE", "website"} {
		if got, ok := ParseOpportunityStatus(raw); ok {
			t.Errorf("ParseOpportunityStatus(%q) = %q, want rejection", raw, got)
		}
	}
}
