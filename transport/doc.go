// Package transport provides an in-process implementation of the
// cross-context channel.
//
// A Bus plays the role of the host event loop: PostMessage only queues a
// delivery, and Flush dispatches queued messages to window listeners one at
// a time, so a listener that replies never re-enters the sender. Windows
// opened through the bus know their opener, and a child reaches its parent
// through OpenerLink, which stamps the child window as the message source.
package transport
