// Package discord adapts the Discord gateway to the relay core.
//
// # Overview
//
// A Session owns the gateway connection. Inbound messages pass the
// eligibility gate (non-partial, human author, private guild text
// channel the bot can see) and are submitted to the request producer.
// The Session also implements relay.Messenger so the delivery loop can
// resolve channels and send replies.
//
// The eligibility rules keep the relay out of public channels: a channel
// qualifies only when the bot can view it and the @everyone role cannot,
// so task instructions never leak into broadly visible conversations.
package discord
