package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

	"golang.org/x/oauth2"
)

const BaseURL = "https://www.strava.com/api/v3"

// Client is a Strava API client backed by a long-lived refresh token.
// It implements ports.RideSource.
type Client struct {
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewClient builds a client from app credentials and a refresh token.
// The oauth2 token source handles access token renewal.
func NewClient(clientID, clientSecret, refreshToken string) *Client {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL: "https://www.strava.com/oauth/token",
		},
	}
	tokenSource := conf.TokenSource(context.Background(), &oauth2.Token{
		RefreshToken: refreshToken,
	})

	return &Client{
		httpClient:  oauth2.NewClient(context.Background(), tokenSource),
		rateLimiter: NewRateLimiter(),
	}
}

// FetchRidesSince fetches all activities after the given time and maps
// them to ride records. Gear resolution happens in the sync service.
func (c *Client) FetchRidesSince(ctx context.Context, since time.Time) ([]domain.RideRecord, error) {
	activities, err := c.getAllActivities(ctx, since)
	if err != nil {
		return nil, err
	}

	rides := make([]domain.RideRecord, 0, len(activities))
	for _, a := range activities {
		rides = append(rides, domain.RideRecord{
			RideID:            a.ID,
			GearID:            a.GearID,
			MovingTimeSeconds: a.MovingTime,
			StartTime:         a.StartDate,
			ActivityType:      a.Type,
			DistanceMeters:    a.Distance,
		})
	}
	return rides, nil
}

func (c *Client) getAllActivities(ctx context.Context, after time.Time) ([]Activity, error) {
	var all []Activity
	page := 1
	perPage := 100 // max allowed by Strava

	for {
		activities, err := c.getActivities(ctx, after, page, perPage)
		if err != nil {
			return all, fmt.Errorf("fetching page %d: %w", page, err)
		}

		if len(activities) == 0 {
			break
		}

		all = append(all, activities...)

		if len(activities) < perPage {
			break
		}
		page++
	}

	return all, nil
}

func (c *Client) getActivities(ctx context.Context, after time.Time, page, perPage int) ([]Activity, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	if !after.IsZero() {
		params.Set("after", strconv.FormatInt(after.Unix(), 10))
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	resp, err := c.get(ctx, "/athlete/activities", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var activities []Activity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("decoding activities: %w", err)
	}

	return activities, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	u := BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	c.rateLimiter.UpdateFromHeaders(resp.Header)

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("strava API returned %d for %s", resp.StatusCode, path)
	}

	return resp, nil
}
