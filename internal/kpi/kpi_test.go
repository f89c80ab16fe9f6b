package kpi

import (
	"database/sql"
	"testing"
)

func numMetric(name string, v float64) Metric {
	return Metric{Name: name, Value: sql.NullFloat64{Float64: v, Valid: true}}
}

func textMetric(name, v string) Metric {
	return Metric{Name: name, Text: sql.NullString{String: v, Valid: true}}
}

func snapshotOf(metrics ...Metric) Snapshot {
	s := Snapshot{}
	for _, m := range metrics {
		s[m.Name] = m
	}
	return s
}

func TestEngagementKPIsPartialSnapshot(t *testing.T) {
	s := snapshotOf(
		numMetric("total_clicks", 50),
		numMetric("total_page_views", 200),
	)
	kpis := EngagementKPIs(s)

	if got := kpis["Click-Through Rate"]; got != "25.0%" {
		t.Errorf("Click-Through Rate = %v, want 25.0%%", got)
	}
	// total_sessions absent, divisor defaults to 1.
	if got := kpis["Pages Per Session"]; got != 200.0 {
		t.Errorf("Pages Per Session = %v, want 200.0", got)
	}
}

func TestEngagementKPIsEmptySnapshotNoDivisionByZero(t *testing.T) {
	kpis := EngagementKPIs(Snapshot{})

	want := map[string]any{
		"Click-Through Rate":        "0.0%",
		"Bounce Rate":               "0.0%",
		"Avg Session Duration":      "0.0 mins",
		"Avg Time On Page":          "0.0 mins",
		"Pages Per Session":         0.0,
		"Event Engagement Rate":     0.0,
		"Avg Page Load Time":        "0.0 ms",
		"Form Submission Rate":      "0.0%",
		"Top Engaged Country":       "N/A",
		"Top Engaged Region":        "N/A",
		"Top Engaged City":          "N/A",
		"Avg Interactions Per User": 0.0,
		"Engaged Users":             0.0,
		"Avg Scroll Depth":          "0.0%",
		"Exit Rate":                 "0.0%",
		"Top Landing Page":          "N/A",
		"Top Exit Page":             "N/A",
	}
	if len(kpis) != len(want) {
		t.Fatalf("got %d KPIs, want %d", len(kpis), len(want))
	}
	for label, w := range want {
		if got := kpis[label]; got != w {
			t.Errorf("%s = %v, want %v", label, got, w)
		}
	}
}

func TestEngagementKPIsFullSnapshot(t *testing.T) {
	s := snapshotOf(
		numMetric("total_clicks", 569),
		numMetric("total_page_views", 1000),
		numMetric("single_page_sessions", 762),
		numMetric("total_sessions", 800),
		numMetric("total_session_duration", 4884523072),
		numMetric("total_time_on_page", 1366890480),
		numMetric("total_interactions", 3904),
		numMetric("total_page_load_time", 5993600),
		numMetric("total_form_submissions", 0),
		numMetric("total_users", 614),
		numMetric("engaged_users", 120),
		numMetric("avg_scroll_depth", 47.256),
		numMetric("total_exit_pages", 640),
		textMetric("most_engaged_country", "India"),
		textMetric("most_engaged_state", "Assam"),
		textMetric("most_engaged_city", "Guwahati"),
		textMetric("top_landing_page", "/home"),
		textMetric("top_exit_page", "/pricing"),
	)
	kpis := EngagementKPIs(s)

	cases := map[string]any{
		"Click-Through Rate":        "56.9%",
		"Bounce Rate":               "95.25%",
		"Avg Session Duration":      "101.76 mins", // 4884523072/800/1000/60
		"Avg Time On Page":          "22.78 mins",  // 1366890480/1000/1000/60
		"Pages Per Session":         1.25,
		"Event Engagement Rate":     4.88,
		"Avg Page Load Time":        "5993.6 ms",
		"Form Submission Rate":      "0.0%",
		"Top Engaged Country":       "India",
		"Top Engaged Region":        "Assam",
		"Top Engaged City":          "Guwahati",
		"Avg Interactions Per User": 6.36,
		"Engaged Users":             120.0,
		"Avg Scroll Depth":          "47.26%",
		"Exit Rate":                 "80.0%",
		"Top Landing Page":          "/home",
		"Top Exit Page":             "/pricing",
	}
	for label, want := range cases {
		if got := kpis[label]; got != want {
			t.Errorf("%s = %v, want %v", label, got, want)
		}
	}
}

func TestEngagementKPIsNullValuesDefault(t *testing.T) {
	s := Snapshot{
		"total_clicks":         {Name: "total_clicks"},         // NULL numeric
		"most_engaged_country": {Name: "most_engaged_country"}, // NULL string
	}
	kpis := EngagementKPIs(s)
	if got := kpis["Click-Through Rate"]; got != "0.0%" {
		t.Errorf("Click-Through Rate = %v, want 0.0%%", got)
	}
	if got := kpis["Top Engaged Country"]; got != "N/A" {
		t.Errorf("Top Engaged Country = %v, want N/A", got)
	}
}

func TestCampaignKPIsEmptySnapshot(t *testing.T) {
	kpis := CampaignKPIs(Snapshot{})

	// impressions is a divisor, so it defaults to 1.
	if got := kpis["Impressions"]; got != 1.0 {
		t.Errorf("Impressions = %v, want 1.0", got)
	}
	if got := kpis["Clicks on Campaign"]; got != 0.0 {
		t.Errorf("Clicks on Campaign = %v, want 0.0", got)
	}
	for _, label := range []string{
		"Click-Through Rate (CTR)",
		"Campaign Conversion Rate (CCR)",
		"Campaign Engagement Rate (CER)",
		"Bounce Rate from Campaigns",
	} {
		if got := kpis[label]; got != "0.0%" {
			t.Errorf("%s = %v, want 0.0%%", label, got)
		}
	}
	if got := kpis["Average Session Duration from Campaigns"]; got != "0.0 mins" {
		t.Errorf("Average Session Duration from Campaigns = %v, want 0.0 mins", got)
	}
	if got := kpis["Top Campaign Source"]; got != "N/A" {
		t.Errorf("Top Campaign Source = %v, want N/A", got)
	}
}

func TestCampaignKPIsComputed(t *testing.T) {
	s := snapshotOf(
		numMetric("impressions", 10000),
		numMetric("campaign_clicks", 1234),
		numMetric("campaign_conversion", 90),
		numMetric("campaign_sessions", 400),
		numMetric("engaged_users", 750),
		numMetric("campaign_single_page_sessions", 100),
		numMetric("campaign_session_duration", 72000000),
		textMetric("top_campaign_source", "google"),
		textMetric("top_campaign_medium", "cpc"),
	)
	kpis := CampaignKPIs(s)

	cases := map[string]any{
		"Impressions":                             10000.0,
		"Clicks on Campaign":                      1234.0,
		"Click-Through Rate (CTR)":                "12.34%",
		"Campaign Conversion Rate (CCR)":          "22.5%",
		"Campaign Engagement Rate (CER)":          "7.5%",
		"Bounce Rate from Campaigns":              "25.0%",
		"Average Session Duration from Campaigns": "3.0 mins", // 72000000/1000/60/400
		"Top Campaign Source":                     "google",
		"Top Campaign Medium":                     "cpc",
	}
	for label, want := range cases {
		if got := kpis[label]; got != want {
			t.Errorf("%s = %v, want %v", label, got, want)
		}
	}
}

func TestKPIsArePureFunctionsOfSnapshot(t *testing.T) {
	s := snapshotOf(
		numMetric("total_clicks", 50),
		numMetric("total_page_views", 200),
	)
	first := EngagementKPIs(s)
	second := EngagementKPIs(s)
	if len(first) != len(second) {
		t.Fatalf("result size changed between calls: %d vs %d", len(first), len(second))
	}
	for label, v := range first {
		if second[label] != v {
			t.Errorf("%s changed between calls: %v vs %v", label, v, second[label])
		}
	}
}

func TestFmtRoundAlwaysKeepsADecimal(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{25, "25.0"},
		{25.004, "25.0"},
		{56.934, "56.93"},
		{0, "0.0"},
		{-25, "-25.0"},
		{0.005, "0.01"},
	}
	for _, tc := range cases {
		if got := fmtRound(tc.in); got != tc.want {
			t.Errorf("fmtRound(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
