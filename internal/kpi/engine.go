package kpi

import (
	"context"
	"log"

	"github.com/scalexlabs/marketing-dashboard/internal/database"
)

// Set maps a KPI label to its formatted value: a string for ratios,
// durations and passthrough text, a float64 for plain counts.
type Set map[string]any

// EngagementKPIs derives the site-engagement KPI set from a snapshot.
// Pure function: same snapshot, same result.
func EngagementKPIs(s Snapshot) Set {
	kpis := Set{}

	totalClicks := s.num("total_clicks", 0)
	totalPageViews := s.num("total_page_views", 1)
	kpis["Click-Through Rate"] = percent(totalClicks / totalPageViews * 100)

	singlePageSessions := s.num("single_page_sessions", 0)
	totalSessions := s.num("total_sessions", 1)
	kpis["Bounce Rate"] = percent(singlePageSessions / totalSessions * 100)

	totalSessionDuration := s.num("total_session_duration", 0)
	kpis["Avg Session Duration"] = minutes(totalSessionDuration / totalSessions / 1000 / 60)

	totalTimeOnPage := s.num("total_time_on_page", 0)
	kpis["Avg Time On Page"] = minutes(totalTimeOnPage / totalPageViews / 1000 / 60)

	kpis["Pages Per Session"] = round2(totalPageViews / totalSessions)

	totalInteractions := s.num("total_interactions", 0)
	kpis["Event Engagement Rate"] = round2(totalInteractions / totalSessions)

	totalPageLoadTime := s.num("total_page_load_time", 0)
	kpis["Avg Page Load Time"] = millis(totalPageLoadTime / totalPageViews)

	totalFormSubmissions := s.num("total_form_submissions", 0)
	kpis["Form Submission Rate"] = percent(totalFormSubmissions / totalSessions * 100)

	kpis["Top Engaged Country"] = s.text("most_engaged_country")
	kpis["Top Engaged Region"] = s.text("most_engaged_state")
	kpis["Top Engaged City"] = s.text("most_engaged_city")

	totalUsers := s.num("total_users", 1)
	kpis["Avg Interactions Per User"] = round2(totalInteractions / totalUsers)

	kpis["Engaged Users"] = s.num("engaged_users", 0)
	kpis["Avg Scroll Depth"] = percent(s.num("avg_scroll_depth", 0))

	totalExitPages := s.num("total_exit_pages", 0)
	kpis["Exit Rate"] = percent(totalExitPages / totalSessions * 100)

	kpis["Top Landing Page"] = s.text("top_landing_page")
	kpis["Top Exit Page"] = s.text("top_exit_page")

	return kpis
}

// CampaignKPIs derives the campaign-performance KPI set from a snapshot.
func CampaignKPIs(s Snapshot) Set {
	kpis := Set{}

	// impressions defaults to 1 because it divides three of the ratios below.
	impressions := s.num("impressions", 1)
	kpis["Impressions"] = impressions

	campaignClicks := s.num("campaign_clicks", 0)
	kpis["Clicks on Campaign"] = campaignClicks

	kpis["Click-Through Rate (CTR)"] = percent(campaignClicks / impressions * 100)

	campaignConversion := s.num("campaign_conversion", 0)
	campaignSessions := s.num("campaign_sessions", 1)
	kpis["Campaign Conversion Rate (CCR)"] = percent(campaignConversion / campaignSessions * 100)

	engagedUsers := s.num("engaged_users", 0)
	kpis["Campaign Engagement Rate (CER)"] = percent(engagedUsers / impressions * 100)

	campaignSinglePageSessions := s.num("campaign_single_page_sessions", 0)
	kpis["Bounce Rate from Campaigns"] = percent(campaignSinglePageSessions / campaignSessions * 100)

	campaignSessionDuration := s.num("campaign_session_duration", 0)
	kpis["Average Session Duration from Campaigns"] = minutes(campaignSessionDuration / 1000 / 60 / campaignSessions)

	kpis["Top Campaign Source"] = s.text("top_campaign_source")
	kpis["Top Campaign Medium"] = s.text("top_campaign_medium")

	return kpis
}

// Engine fetches a tenant's aggregate metrics and derives KPI sets from
// them. Any fetch failure is logged and yields an empty set; callers must
// treat an empty set as "data unavailable", not as zero values.
type Engine struct {
	Conn database.Connector
}

func (e *Engine) Engagement(ctx context.Context, creds database.Credentials) Set {
	s, err := e.fetch(ctx, creds)
	if err != nil {
		log.Printf("kpi: engagement fetch failed: %v", err)
		return Set{}
	}
	return EngagementKPIs(s)
}

func (e *Engine) Campaign(ctx context.Context, creds database.Credentials) Set {
	s, err := e.fetch(ctx, creds)
	if err != nil {
		log.Printf("kpi: campaign fetch failed: %v", err)
		return Set{}
	}
	return CampaignKPIs(s)
}

func (e *Engine) fetch(ctx context.Context, creds database.Credentials) (Snapshot, error) {
	db, err := e.Conn.Connect(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		"SELECT metric_name, metric_value, metric_value_string FROM kpi_aggregate_table")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshot := Snapshot{}
	for rows.Next() {
		var m Metric
		if err := rows.Scan(&m.Name, &m.Value, &m.Text); err != nil {
			return nil, err
		}
		snapshot[m.Name] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snapshot, nil
}
