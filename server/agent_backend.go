/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/OSSystems/pkg/log"
	"github.com/julienschmidt/httprouter"

	"github.com/nakomis/bootboots-sub001/stager"
)

// UpdateAction is the only action the trigger layer may request
const UpdateAction = "ota_update"

// Notification is the trigger-facing progress report
type Notification struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Progress int    `json:"progress"`
}

// UpdateRequest is the trigger-facing update command
type UpdateRequest struct {
	Action      string `json:"action"`
	FirmwareURL string `json:"firmware_url"`
	Version     string `json:"version"`
}

// AgentBackend exposes the update stager to the command layer over
// HTTP and doubles as the stager's progress sink
type AgentBackend struct {
	Stager  *stager.Stager
	Version string

	mutex      sync.Mutex
	last       Notification
	notifyChan chan Notification
}

func NewAgentBackend(s *stager.Stager, version string) (*AgentBackend, error) {
	ab := &AgentBackend{
		Stager:  s,
		Version: version,
		last:    Notification{Status: "idle"},
	}

	ab.notifyChan = make(chan Notification, 10)

	return ab, nil
}

// Notifications is the channel the trigger layer can subscribe to.
// Writes to it never block; a slow consumer just misses entries.
func (ab *AgentBackend) Notifications() <-chan Notification {
	return ab.notifyChan
}

// Report is the stager.ProgressSink implementation
func (ab *AgentBackend) Report(percent int) {
	ab.mutex.Lock()
	message := ab.last.Message
	ab.mutex.Unlock()

	ab.notify("downloading", message, percent)
}

func (ab *AgentBackend) notify(status string, message string, progress int) {
	n := Notification{Status: status, Message: message, Progress: progress}

	ab.mutex.Lock()
	ab.last = n
	ab.mutex.Unlock()

	// "non-blocking" write to channel
	select {
	case ab.notifyChan <- n:
	default:
	}
}

func (ab *AgentBackend) Routes() []Route {
	return []Route{
		{Method: "GET", Path: "/info", Handle: ab.info},
		{Method: "GET", Path: "/status", Handle: ab.status},
		{Method: "GET", Path: "/log", Handle: ab.log},
		{Method: "POST", Path: "/update", Handle: ab.update},
		{Method: "POST", Path: "/update/cancel", Handle: ab.updateCancel},
	}
}

func (ab *AgentBackend) info(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	out := map[string]interface{}{}

	out["version"] = ab.Version
	out["config"] = ab.Stager.Settings

	outputJSON, _ := json.MarshalIndent(out, "", "    ")

	w.WriteHeader(200)

	fmt.Fprint(w, string(outputJSON))
}

func (ab *AgentBackend) status(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	ab.mutex.Lock()
	out := ab.last
	ab.mutex.Unlock()

	outputJSON, _ := json.MarshalIndent(out, "", "    ")

	w.WriteHeader(200)

	fmt.Fprint(w, string(outputJSON))
}

func (ab *AgentBackend) update(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var req UpdateRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeNotification(w, 400, Notification{Status: "error", Message: fmt.Sprintf("invalid update request: %s", err)})
		return
	}

	if req.Action != UpdateAction {
		writeNotification(w, 400, Notification{Status: "error", Message: fmt.Sprintf("unsupported action '%s'", req.Action)})
		return
	}

	if req.FirmwareURL == "" {
		writeNotification(w, 400, Notification{Status: "error", Message: "firmware_url is required"})
		return
	}

	if ab.Stager.InProgress() {
		writeNotification(w, 409, Notification{Status: "busy", Message: "another update is already in progress"})
		return
	}

	go ab.startUpdate(req)

	writeNotification(w, 202, Notification{Status: "accepted", Message: fmt.Sprintf("request accepted, staging firmware %s", req.Version)})
}

func (ab *AgentBackend) startUpdate(req UpdateRequest) {
	ab.notify("downloading", fmt.Sprintf("staging firmware %s", req.Version), 0)

	err := ab.Stager.Start(req.Version, req.FirmwareURL)

	switch err {
	case nil:
		ab.notify("rebooting", fmt.Sprintf("firmware %s staged, rebooting", req.Version), 100)
	case stager.ErrBusy:
		log.Warn("update request raced with another update")
		ab.notify("busy", fmt.Sprintf("firmware %s dropped, another update is already in progress", req.Version), 0)
	case stager.ErrCancelled:
		ab.notify("cancelled", fmt.Sprintf("staging of firmware %s cancelled", req.Version), 0)
	default:
		ab.notify("error", err.Error(), 0)
	}
}

func (ab *AgentBackend) updateCancel(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if !ab.Stager.InProgress() {
		writeNotification(w, 400, Notification{Status: "error", Message: "no update in progress"})
		return
	}

	ab.Stager.Cancel()

	writeNotification(w, 202, Notification{Status: "accepted", Message: "cancellation requested"})
}

func (ab *AgentBackend) log(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	out := []map[string]interface{}{}

	for _, e := range log.AllEntries() {
		out = append(out, map[string]interface{}{
			"message": e.Message,
			"level":   string(e.Level.String()),
			"time":    string(e.Time.String()),
			"data":    e.Data,
		})
	}

	w.WriteHeader(200)

	outputJSON, _ := json.MarshalIndent(out, "", "    ")
	fmt.Fprint(w, string(outputJSON))
}

func writeNotification(w http.ResponseWriter, statusCode int, n Notification) {
	outputJSON, _ := json.MarshalIndent(n, "", "    ")

	w.WriteHeader(statusCode)

	fmt.Fprint(w, string(outputJSON))
}
