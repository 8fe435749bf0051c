package solr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config locates a Solr request handler. Timeouts are in seconds.
type Config struct {
	Host        string `json:"host"`
	Core        string `json:"core"`
	Handler     string `json:"handler"`
	ConnTimeout string `json:"conn_timeout"`
	ReadTimeout string `json:"read_timeout"`
}

// Client queries one Solr request handler.
type Client struct {
	url    string
	client *http.Client
	logger *log.Logger
}

// NewClient creates a client for cfg. Requests are logged to logger when it
// is not nil.
func NewClient(cfg Config, logger *log.Logger) *Client {
	connTimeout := timeoutWithMinimum(cfg.ConnTimeout, 5)
	readTimeout := timeoutWithMinimum(cfg.ReadTimeout, 5)

	httpClient := &http.Client{
		Timeout: time.Duration(readTimeout) * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   time.Duration(connTimeout) * time.Second,
				KeepAlive: 60 * time.Second,
			}).DialContext,
			MaxIdleConns:        100, // we are hitting one solr host, so
			MaxIdleConnsPerHost: 100, // these two values can be the same
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &Client{
		url:    fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(cfg.Host, "/"), cfg.Core, cfg.Handler),
		client: httpClient,
		logger: logger,
	}
}

func timeoutWithMinimum(str string, min int) int {
	val, err := strconv.Atoi(str)

	// fallback for invalid or nonsensical timeout values
	if err != nil || val < min {
		val = min
	}

	return val
}

func (c *Client) URL() string {
	return c.url
}

func (c *Client) log(format string, args ...interface{}) {
	if c.logger == nil {
		return
	}

	c.logger.Printf("[SOLR] "+format, args...)
}

// Search runs a query built from params and decodes the response.
func (c *Client) Search(ctx context.Context, params url.Values) (*RecordCollection, error) {
	query := url.Values{}
	for key, vals := range params {
		query[key] = append([]string{}, vals...)
	}

	if query.Has("wt") == false {
		query.Set("wt", "json")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create solr request: %w", err)
	}

	c.log("req: [%s]", query.Encode())

	start := time.Now()
	res, err := c.client.Do(req)
	elapsedMS := int64(time.Since(start) / time.Millisecond)

	if err != nil {
		errMsg := err.Error()

		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			errMsg = fmt.Sprintf("%s timed out", c.url)
		} else if strings.Contains(errMsg, "connection refused") {
			errMsg = fmt.Sprintf("%s refused connection", c.url)
		}

		c.log("ERROR: failed response from GET %s: %s. Elapsed Time: %d (ms)", c.url, errMsg, elapsedMS)

		return nil, fmt.Errorf("failed to receive solr response: %w", err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read solr response: %w", err)
	}

	rc, err := NewRecordCollection(body)

	var solrErr *Error

	switch {
	case errors.As(err, &solrErr):
		c.log("ERROR: solr error from GET %s: %s. Elapsed Time: %d (ms)", c.url, solrErr.Error(), elapsedMS)
		return nil, solrErr

	case err != nil && res.StatusCode != http.StatusOK:
		c.log("ERROR: failed response from GET %s - %d. Elapsed Time: %d (ms)", c.url, res.StatusCode, elapsedMS)
		return nil, &Error{Code: res.StatusCode, Msg: http.StatusText(res.StatusCode)}

	case err != nil:
		c.log("ERROR: undecodable response from GET %s: %s. Elapsed Time: %d (ms)", c.url, err.Error(), elapsedMS)
		return nil, err
	}

	rc.ElapsedMS = elapsedMS

	c.log("res: header: { status = %d, QTime = %d }, body: { start = %d, total = %d }. Elapsed Time: %d (ms)", rc.Header.Status, rc.Header.QTime, rc.Start, rc.Total, elapsedMS)

	return rc, nil
}

// Ping checks that Solr answers a query that matches nothing in particular.
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{}
	params.Set("q", "*:*")
	params.Set("rows", "0")

	_, err := c.Search(ctx, params)

	return err
}
