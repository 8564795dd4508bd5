package versions

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/crucial707/hci-versions/cmd/cli/config"
	"github.com/crucial707/hci-versions/cmd/cli/output"
	"github.com/spf13/cobra"
)

// version mirrors one view returned by the API.
type version struct {
	Number    int       `json:"number"`
	Event     string    `json:"event"`
	Message   string    `json:"message"`
	Table     string    `json:"table"`
	Item      string    `json:"item"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// ==========================
// Init Versions
// ==========================
func InitVersions(rootCmd *cobra.Command) {
	versionsCmd := &cobra.Command{
		Use:   "versions",
		Short: "Browse version history",
	}

	versionsCmd.AddCommand(
		latestCmd(),
		modelCmd(),
		objectCmd(),
	)

	rootCmd.AddCommand(versionsCmd)
}

// ==========================
// LATEST
// ==========================
func latestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Show the latest 100 versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchAndRender(cmd, "/v1/versions", nil)
		},
	}
	cmd.Flags().Bool("json", false, "Output raw JSON")
	return cmd
}

// ==========================
// MODEL
// ==========================
func modelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model <model>",
		Short: "List versions of every record of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchAndRender(cmd, "/v1/versions/"+url.PathEscape(args[0]), listValues(cmd))
		},
	}
	addListFlags(cmd)
	return cmd
}

// ==========================
// OBJECT
// ==========================
func objectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "object <model> <id>",
		Short: "List versions of one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/v1/versions/" + url.PathEscape(args[0]) + "/" + url.PathEscape(args[1])
			return fetchAndRender(cmd, path, listValues(cmd))
		},
	}
	addListFlags(cmd)
	return cmd
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().String("query", "", "Match version numbers containing this text")
	cmd.Flags().String("sort", "", "Sort by item, table, username, created_at or message")
	cmd.Flags().Bool("reverse", false, "Sort descending")
	cmd.Flags().Bool("all", false, "Return every version instead of one page")
	cmd.Flags().Int("page", 0, "Page number (default 1)")
	cmd.Flags().Int("per-page", 0, "Page size (default: server setting)")
	cmd.Flags().Bool("json", false, "Output raw JSON")
}

func listValues(cmd *cobra.Command) url.Values {
	v := url.Values{}
	if s, _ := cmd.Flags().GetString("query"); s != "" {
		v.Set("query", s)
	}
	if s, _ := cmd.Flags().GetString("sort"); s != "" {
		v.Set("sort", s)
	}
	if b, _ := cmd.Flags().GetBool("reverse"); b {
		v.Set("sort_reverse", "true")
	}
	if b, _ := cmd.Flags().GetBool("all"); b {
		v.Set("all", "true")
	}
	if n, _ := cmd.Flags().GetInt("page"); n > 0 {
		v.Set("page", strconv.Itoa(n))
	}
	if n, _ := cmd.Flags().GetInt("per-page"); n > 0 {
		v.Set("per_page", strconv.Itoa(n))
	}
	return v
}

func fetchAndRender(cmd *cobra.Command, path string, query url.Values) error {
	u := config.APIURL() + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(cmd.Context(), "GET", u, nil)
	if err != nil {
		return err
	}
	if token := config.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (%d): %s", resp.StatusCode, string(b))
	}

	var list []version
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	rows := make([][]interface{}, 0, len(list))
	for _, v := range list {
		rows = append(rows, []interface{}{v.CreatedAt.Format(time.RFC3339), v.Event, v.Table, v.Item, v.Username, v.Message})
	}
	output.RenderTable([]string{"Created At", "Event", "Table", "Item", "User", "Message"}, rows)
	return nil
}
