// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

// Package http provides cold observables backed by HTTP requests. Requests
// are made when subscribed to and all notifications are pushed before
// Subscribe returns.
package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/joamaki/pushstream/stream"
)

type Option func(*http.Request)

func WithBasicAuth(username, password string) Option {
	return func(req *http.Request) {
		req.SetBasicAuth(username, password)
	}
}

func WithHeader(key, value string) Option {
	return func(req *http.Request) {
		req.Header.Add(key, value)
	}
}

// StatusError is the error of Lines when the server responds with a
// non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

func do(ctx context.Context, method, url string, body io.Reader, options []Option) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	for _, opt := range options {
		opt(req)
	}
	return http.DefaultClient.Do(req)
}

func request(ctx context.Context, method, url string, body func() io.Reader, options []Option) stream.Observable[*http.Response, error] {
	return stream.FuncObservable[*http.Response, error](
		func(observer stream.Observer[*http.Response, error]) stream.Subscription {
			var r io.Reader
			if body != nil {
				r = body()
			}
			resp, err := do(ctx, method, url, r, options)
			if err != nil {
				observer.OnError(err)
				return stream.NopSubscription
			}
			observer.OnNext(resp)
			observer.OnCompleted()
			return stream.NopSubscription
		})
}

// Get emits the response to a GET request and completes, or fails with the
// transport error. The observer is responsible for closing the response body.
func Get(ctx context.Context, url string, options ...Option) stream.Observable[*http.Response, error] {
	return request(ctx, http.MethodGet, url, nil, options)
}

// Post is like Get, but sends a POST request. 'body' is called on every
// subscribe for a fresh request body.
func Post(ctx context.Context, url string, body func() io.Reader, options ...Option) stream.Observable[*http.Response, error] {
	return request(ctx, http.MethodPost, url, body, options)
}

// Lines emits the lines of the response body to a GET request. Cancelling
// 'ctx' aborts reading the body and fails the observable with the context
// error, as the returned subscription only exists after all lines have been
// pushed.
func Lines(ctx context.Context, url string, options ...Option) stream.Observable[string, error] {
	return stream.FuncObservable[string, error](
		func(observer stream.Observer[string, error]) stream.Subscription {
			resp, err := do(ctx, http.MethodGet, url, nil, options)
			if err != nil {
				observer.OnError(err)
				return stream.NopSubscription
			}
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				observer.OnError(&StatusError{URL: url, StatusCode: resp.StatusCode})
				return stream.NopSubscription
			}

			scanner := bufio.NewScanner(resp.Body)
			for scanner.Scan() {
				observer.OnNext(scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				observer.OnError(err)
				return stream.NopSubscription
			}
			observer.OnCompleted()
			return stream.NopSubscription
		})
}
