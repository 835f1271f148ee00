package api

import (
	"time"

	"github.com/garunski/codequest/pkg/codequest/index"
)

type HealthStatus struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentStatus `json:"components,omitempty"`
}

type ComponentStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type TopicResponse struct {
	Topic  int           `json:"topic"`
	Images []index.Entry `json:"images"`
}

type TopicsResponse struct {
	Count  int             `json:"count"`
	Topics []TopicResponse `json:"topics"`
}

type ManifestResponse struct {
	Topic int      `json:"topic"`
	Names []string `json:"names"`
}

type AddImageRequest struct {
	Name string `json:"name"`
}

type DeleteImageResponse struct {
	Topic   int    `json:"topic"`
	Name    string `json:"name"`
	Removed int    `json:"removed"`
}

type ImageExistsResponse struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
}
