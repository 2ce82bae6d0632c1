/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package server

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nakomis/bootboots-sub001/stager"
	"github.com/nakomis/bootboots-sub001/testsmocks/fetchermock"
	"github.com/nakomis/bootboots-sub001/testsmocks/rebootermock"
	"github.com/nakomis/bootboots-sub001/testsmocks/recordmock"
)

func setup(t *testing.T) (*AgentBackend, string, *fetchermock.FetcherMock, *recordmock.RecordMock, *rebootermock.RebooterMock, func()) {
	memFs := afero.NewMemMapFs()

	fm := &fetchermock.FetcherMock{}
	rm := &recordmock.RecordMock{}
	rbm := &rebootermock.RebooterMock{}

	settings := stager.DefaultSettings()
	settings.ReadTimeout = time.Minute

	s := stager.NewStager(memFs, settings, rm, fm, rbm, nil, nil)

	ab, err := NewAgentBackend(s, "1.0.41")
	assert.NoError(t, err)

	s.Progress = ab

	router := NewBackendRouter(ab)
	server := httptest.NewServer(router.HTTPRouter)

	return ab, server.URL, fm, rm, rbm, server.Close
}

func postUpdate(t *testing.T, url string, body string) (*http.Response, Notification) {
	r, err := http.Post(url+"/update", "application/json", bytes.NewBufferString(body))
	assert.NoError(t, err)

	data, err := ioutil.ReadAll(r.Body)
	assert.NoError(t, err)
	r.Body.Close()

	var n Notification
	assert.NoError(t, json.Unmarshal(data, &n))

	return r, n
}

func TestUpdateRouteAccepted(t *testing.T) {
	ab, url, fm, rm, rbm, teardown := setup(t)
	defer teardown()

	image := []byte("new firmware image")

	fm.On("Fetch", "http://cloud/firmware/1.0.42.img").Return(ioutil.NopCloser(bytes.NewReader(image)), int64(len(image)), nil).Once()
	rm.On("SetPending", uint32(len(image))).Return(nil).Once()
	rbm.On("Reboot").Return(nil).Once()

	r, n := postUpdate(t, url, `{ "action": "ota_update", "firmware_url": "http://cloud/firmware/1.0.42.img", "version": "1.0.42" }`)

	assert.Equal(t, 202, r.StatusCode)
	assert.Equal(t, "accepted", n.Status)
	assert.Equal(t, "request accepted, staging firmware 1.0.42", n.Message)

	// the staging runs in the background; wait for the final
	// notification
	deadline := time.After(5 * time.Second)
	for {
		var done bool

		select {
		case notification := <-ab.Notifications():
			if notification.Status == "rebooting" {
				assert.Equal(t, 100, notification.Progress)
				done = true
			}
		case <-deadline:
			t.Fatal("timed out waiting for the rebooting notification")
		}

		if done {
			break
		}
	}

	fm.AssertExpectations(t)
	rm.AssertExpectations(t)
	rbm.AssertExpectations(t)
}

func TestUpdateRouteWithInvalidJSON(t *testing.T) {
	_, url, _, _, _, teardown := setup(t)
	defer teardown()

	r, n := postUpdate(t, url, `{ not json`)

	assert.Equal(t, 400, r.StatusCode)
	assert.Equal(t, "error", n.Status)
}

func TestUpdateRouteWithUnsupportedAction(t *testing.T) {
	_, url, _, _, _, teardown := setup(t)
	defer teardown()

	r, n := postUpdate(t, url, `{ "action": "factory_reset", "firmware_url": "http://cloud/firmware.img", "version": "1.0.42" }`)

	assert.Equal(t, 400, r.StatusCode)
	assert.Equal(t, "error", n.Status)
	assert.Equal(t, "unsupported action 'factory_reset'", n.Message)
}

func TestUpdateRouteWithMissingURL(t *testing.T) {
	_, url, _, _, _, teardown := setup(t)
	defer teardown()

	r, n := postUpdate(t, url, `{ "action": "ota_update", "version": "1.0.42" }`)

	assert.Equal(t, 400, r.StatusCode)
	assert.Equal(t, "error", n.Status)
	assert.Equal(t, "firmware_url is required", n.Message)
}

func TestUpdateRouteWhileBusy(t *testing.T) {
	_, url, fm, _, _, teardown := setup(t)
	defer teardown()

	gate := make(chan bool)
	started := make(chan bool)

	fm.On("Fetch", "http://cloud/firmware.img").Run(func(args mock.Arguments) {
		close(started)
		<-gate
	}).Return(nil, int64(0), assert.AnError).Once()

	r, n := postUpdate(t, url, `{ "action": "ota_update", "firmware_url": "http://cloud/firmware.img", "version": "1.0.42" }`)
	assert.Equal(t, 202, r.StatusCode)
	assert.Equal(t, "accepted", n.Status)

	<-started

	r, n = postUpdate(t, url, `{ "action": "ota_update", "firmware_url": "http://cloud/firmware.img", "version": "1.0.43" }`)
	assert.Equal(t, 409, r.StatusCode)
	assert.Equal(t, "busy", n.Status)

	close(gate)

	fm.AssertExpectations(t)
}

func TestStatusRoute(t *testing.T) {
	_, url, _, _, _, teardown := setup(t)
	defer teardown()

	r, err := http.Get(url + "/status")
	assert.NoError(t, err)

	data, err := ioutil.ReadAll(r.Body)
	assert.NoError(t, err)
	r.Body.Close()

	var n Notification
	assert.NoError(t, json.Unmarshal(data, &n))

	assert.Equal(t, 200, r.StatusCode)
	assert.Equal(t, "idle", n.Status)
	assert.Equal(t, 0, n.Progress)
}

func TestCancelRouteWithNoUpdateInProgress(t *testing.T) {
	_, url, _, _, _, teardown := setup(t)
	defer teardown()

	r, err := http.Post(url+"/update/cancel", "application/json", nil)
	assert.NoError(t, err)
	defer r.Body.Close()

	assert.Equal(t, 400, r.StatusCode)
}

func TestInfoRoute(t *testing.T) {
	_, url, _, _, _, teardown := setup(t)
	defer teardown()

	r, err := http.Get(url + "/info")
	assert.NoError(t, err)

	data, err := ioutil.ReadAll(r.Body)
	assert.NoError(t, err)
	r.Body.Close()

	assert.Equal(t, 200, r.StatusCode)

	jsonMap := map[string]interface{}{}
	assert.NoError(t, json.Unmarshal(data, &jsonMap))
	assert.Equal(t, "1.0.41", jsonMap["version"])
}

func TestLogRoute(t *testing.T) {
	_, url, _, _, _, teardown := setup(t)
	defer teardown()

	r, err := http.Get(url + "/log")
	assert.NoError(t, err)
	defer r.Body.Close()

	assert.Equal(t, 200, r.StatusCode)
}

func TestStartUpdateLosingTheRaceNotifiesBusy(t *testing.T) {
	ab, _, fm, rm, rbm, teardown := setup(t)
	defer teardown()

	gate := make(chan bool)
	started := make(chan bool)

	image := []byte("new firmware image")

	fm.On("Fetch", "http://cloud/firmware/1.0.42.img").Run(func(args mock.Arguments) {
		close(started)
		<-gate
	}).Return(ioutil.NopCloser(bytes.NewReader(image)), int64(len(image)), nil).Once()

	rm.On("SetPending", uint32(len(image))).Return(nil).Once()
	rbm.On("Reboot").Return(nil).Once()

	done := make(chan bool)
	go func() {
		ab.Stager.Start("1.0.42", "http://cloud/firmware/1.0.42.img")
		close(done)
	}()

	<-started

	// a second request that slipped past the in-progress precheck
	// still surfaces its fate through the notification channel
	ab.startUpdate(UpdateRequest{Action: UpdateAction, FirmwareURL: "http://cloud/firmware/1.0.43.img", Version: "1.0.43"})

	n := <-ab.Notifications()
	assert.Equal(t, "downloading", n.Status)

	n = <-ab.Notifications()
	assert.Equal(t, "busy", n.Status)
	assert.Equal(t, "firmware 1.0.43 dropped, another update is already in progress", n.Message)

	close(gate)
	<-done

	fm.AssertExpectations(t)
	rm.AssertExpectations(t)
	rbm.AssertExpectations(t)
}
