/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/hokaccha/go-prettyjson"

	"github.com/nakomis/bootboots-sub001/manifest"
	"github.com/nakomis/bootboots-sub001/server"
)

// Client speaks the appliance trigger API
type Client struct {
	serverAddress string
	http          *http.Client
}

func NewClient(serverAddress string) *Client {
	return &Client{
		serverAddress: serverAddress,
		http:          &http.Client{},
	}
}

func (c *Client) buildURL(path string) string {
	return fmt.Sprintf("http://%s%s", c.serverAddress, path)
}

func (c *Client) get(path string, out interface{}) error {
	res, err := c.http.Get(c.buildURL(path))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("agent returned HTTP %d: %s", res.StatusCode, string(body))
	}

	return json.Unmarshal(body, out)
}

func (c *Client) post(path string, payload interface{}) (*server.Notification, error) {
	var body bytes.Buffer

	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, err
		}
	}

	res, err := c.http.Post(c.buildURL(path), "application/json", &body)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	n := &server.Notification{}
	if err := json.NewDecoder(res.Body).Decode(n); err != nil {
		return nil, err
	}

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("agent returned HTTP %d: %s", res.StatusCode, n.Message)
	}

	return n, nil
}

func execUpdateCmd(agent *Client, url string, version string) error {
	n, err := agent.post("/update", &server.UpdateRequest{
		Action:      server.UpdateAction,
		FirmwareURL: url,
		Version:     version,
	})
	if err != nil {
		return err
	}

	output, _ := prettyjson.Marshal(n)
	fmt.Println(string(output))

	return nil
}

func execUpdateFromManifestCmd(agent *Client, manifestPath string) error {
	data, err := ioutil.ReadFile(manifestPath)
	if err != nil {
		return err
	}

	m, err := manifest.NewManifest(data)
	if err != nil {
		return err
	}

	latest := m.Latest()
	if latest == nil {
		return fmt.Errorf("manifest for '%s' lists no versions", m.Project)
	}

	return execUpdateCmd(agent, latest.Path, latest.Version)
}

func execStatusCmd(agent *Client) error {
	n := &server.Notification{}
	if err := agent.get("/status", n); err != nil {
		return err
	}

	output, _ := prettyjson.Marshal(n)
	fmt.Println(string(output))

	return nil
}

func execInfoCmd(agent *Client) error {
	info := map[string]interface{}{}
	if err := agent.get("/info", &info); err != nil {
		return err
	}

	output, _ := prettyjson.Marshal(info)
	fmt.Println(string(output))

	return nil
}

func execLogsCmd(agent *Client) error {
	var entries []LogEntry
	if err := agent.get("/log", &entries); err != nil {
		return err
	}

	for _, entry := range entries {
		output, _ := prettyjson.Marshal(entry)
		fmt.Println(string(output))
	}

	return nil
}

func execCancelCmd(agent *Client) error {
	n, err := agent.post("/update/cancel", nil)
	if err != nil {
		return err
	}

	output, _ := prettyjson.Marshal(n)
	fmt.Println(string(output))

	return nil
}
