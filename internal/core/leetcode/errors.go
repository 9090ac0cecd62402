package leetcode

import "fmt"

// UpstreamHTTPError is returned when LeetCode answers with a non-2xx status.
type UpstreamHTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("LeetCode GraphQL error: %d %s - %s", e.StatusCode, e.Status, e.Body)
}

// UpstreamTransportError covers everything else that can go wrong talking to LeetCode:
// network failures, unreadable bodies and undecodable JSON.
type UpstreamTransportError struct {
	Op  string
	Err error
}

func (e *UpstreamTransportError) Error() string {
	return fmt.Sprintf("LeetCode GraphQL %s: %v", e.Op, e.Err)
}

func (e *UpstreamTransportError) Unwrap() error {
	return e.Err
}
