package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *options) *cobra.Command {
	var (
		tcpAddr string
		pretty  bool
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream override events from the sync server",
		Long: "Stream override events. With --tcp the line-oriented sync port is used " +
			"and the client reconnects on disconnect; otherwise the API's /ws endpoint.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if tcpAddr == "" {
				wsURL, err := websocketURL(opts.baseURL, "/ws")
				if err != nil {
					return err
				}
				return runWebSocket(w, wsURL, pretty)
			}
			for {
				select {
				case <-cmd.Context().Done():
					return nil
				default:
				}
				if err := runSyncTCP(w, tcpAddr, pretty); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "[sync] disconnected: %v\n", err)
				}
				time.Sleep(time.Second)
			}
		},
	}
	cmd.Flags().StringVar(&tcpAddr, "tcp", "", "TCP sync server address, e.g. 127.0.0.1:7070")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "pretty print JSON events")
	return cmd
}

func runSyncTCP(w io.Writer, addr string, pretty bool) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		printEvent(w, sc.Bytes(), pretty)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return os.ErrClosed
}

func runWebSocket(w io.Writer, wsURL string, pretty bool) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", wsURL, err)
	}
	defer conn.Close()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		printEvent(w, msg, pretty)
	}
}

func printEvent(w io.Writer, line []byte, pretty bool) {
	if !pretty {
		fmt.Fprintln(w, string(line))
		return
	}
	var obj map[string]any
	if err := json.Unmarshal(line, &obj); err != nil {
		// not JSON, print raw
		fmt.Fprintln(w, string(line))
		return
	}
	b, _ := json.MarshalIndent(obj, "", "  ")
	fmt.Fprintln(w, string(b))
}
