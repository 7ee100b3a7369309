// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package logging

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

// WatermillAdapter implements watermill.LoggerAdapter on top of zerolog.
type WatermillAdapter struct {
	logger zerolog.Logger
}

var _ watermill.LoggerAdapter = (*WatermillAdapter)(nil)

// NewWatermillAdapter wraps logger for use by watermill routers and pub/subs.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewWatermillAdapter(logger zerolog.Logger) *WatermillAdapter {
	return &WatermillAdapter{logger: logger}
}

func (a *WatermillAdapter) Error(msg string, err error, fields watermill.LogFields) {
	withFields(a.logger.Error().Err(err), fields).Msg(msg)
}

func (a *WatermillAdapter) Info(msg string, fields watermill.LogFields) {
	withFields(a.logger.Info(), fields).Msg(msg)
}

func (a *WatermillAdapter) Debug(msg string, fields watermill.LogFields) {
	withFields(a.logger.Debug(), fields).Msg(msg)
}

func (a *WatermillAdapter) Trace(msg string, fields watermill.LogFields) {
	withFields(a.logger.Trace(), fields).Msg(msg)
}

// With returns an adapter whose logger always carries fields.
func (a *WatermillAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &WatermillAdapter{logger: a.logger.With().Fields(map[string]interface{}(fields)).Logger()}
}

func withFields(e *zerolog.Event, fields watermill.LogFields) *zerolog.Event {
	if len(fields) == 0 {
		return e
	}
	return e.Fields(map[string]interface{}(fields))
}
