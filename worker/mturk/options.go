//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package mturk

import (
	"os"

	"github.com/aws/aws-sdk-go/service/mturk/mturkiface"
)

// SandboxEndpoint is the requester sandbox. Production use requires
// WithEndpoint(ProductionEndpoint).
const (
	SandboxEndpoint    = "https://mturk-requester-sandbox.us-east-1.amazonaws.com"
	ProductionEndpoint = "https://mturk-requester.us-east-1.amazonaws.com"

	defaultRegion            = "us-east-1"
	defaultReward            = "0.05"
	defaultMaxAssignments    = 1
	defaultLifetimeSeconds   = 3600
	defaultAssignmentSeconds = 300
)

// options contains configuration options for creating a Worker.
type options struct {
	endpoint          string
	region            string
	accessKey         string
	secretKey         string
	reward            string
	maxAssignments    int64
	lifetimeSeconds   int64
	assignmentSeconds int64
	// api overrides the MTurk client; used by tests.
	api mturkiface.MTurkAPI
}

func defaultOptions() options {
	return options{
		endpoint:          SandboxEndpoint,
		region:            defaultRegion,
		accessKey:         os.Getenv("AWS_ACCESS_KEY"),
		secretKey:         os.Getenv("AWS_SECRET_ACCESS_KEY"),
		reward:            defaultReward,
		maxAssignments:    defaultMaxAssignments,
		lifetimeSeconds:   defaultLifetimeSeconds,
		assignmentSeconds: defaultAssignmentSeconds,
	}
}

// Option is a function that configures a Worker.
type Option func(*options)

// WithEndpoint sets the requester endpoint.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithRegion sets the AWS region.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithCredentials sets static AWS credentials.
func WithCredentials(accessKey, secretKey string) Option {
	return func(o *options) {
		o.accessKey = accessKey
		o.secretKey = secretKey
	}
}

// WithReward sets the HIT reward in dollars, e.g. "0.05".
func WithReward(reward string) Option {
	return func(o *options) { o.reward = reward }
}

// WithLifetime sets how long a HIT stays available, in seconds.
func WithLifetime(seconds int64) Option {
	return func(o *options) { o.lifetimeSeconds = seconds }
}

// WithAssignmentDuration sets the time a crowd worker has to answer, in
// seconds.
func WithAssignmentDuration(seconds int64) Option {
	return func(o *options) { o.assignmentSeconds = seconds }
}

// WithAPI overrides the MTurk client.
func WithAPI(api mturkiface.MTurkAPI) Option {
	return func(o *options) { o.api = api }
}
