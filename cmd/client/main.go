package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"testserver/internal/client"
	"testserver/internal/jsonq"
	"testserver/internal/server"
)

var (
    jsonData string
    rawData  string
    formArgs []string
    compact  bool
)

var rootCmd = &cobra.Command{
    Use:           "testclient",
    Short:         "Send requests to the test server and inspect JSON",
    SilenceUsage:  true,
    SilenceErrors: true,
}

var getCmd = &cobra.Command{
    Use:   "get [url]",
    Short: "Send a GET request",
    Args:  cobra.MaximumNArgs(1),
    RunE: func(cmd *cobra.Command, args []string) error {
        target, err := targetURL(args)
        if err != nil {
            return err
        }
        fmt.Printf("Sending GET request to: %s\n", target)
        return send(cmd.Context(), http.MethodGet, target, nil)
    },
}

var postCmd = &cobra.Command{
    Use:   "post [url]",
    Short: "Send a POST request",
    Args:  cobra.MaximumNArgs(1),
    RunE: func(cmd *cobra.Command, args []string) error {
        target, err := targetURL(args)
        if err != nil {
            return err
        }
        body, err := postBody(cmd)
        if err != nil {
            return err
        }
        fmt.Printf("Sending POST request to: %s\n", target)
        if body == nil {
            fmt.Println("No request body provided")
        } else {
            fmt.Printf("Content-Type: %s\n", body.ContentType())
            fmt.Printf("Request body: %s\n", body.String())
        }
        return send(cmd.Context(), http.MethodPost, target, body)
    },
}

var jsonCmd = &cobra.Command{
    Use:   "json [query]",
    Short: "Pretty-print JSON from stdin, optionally selecting a dot path",
    Args:  cobra.MaximumNArgs(1),
    RunE: func(cmd *cobra.Command, args []string) error {
        if len(args) == 1 {
            if err := jsonq.ValidateQuery(args[0]); err != nil {
                return err
            }
        }
        v, err := jsonq.Decode(cmd.InOrStdin())
        if err != nil {
            return err
        }
        if len(args) == 1 {
            if v, err = jsonq.Query(v, args[0]); err != nil {
                return err
            }
        }
        out, err := jsonq.Format(v, compact)
        if err != nil {
            return err
        }
        fmt.Fprintln(cmd.OutOrStdout(), string(out))
        return nil
    },
}

func targetURL(args []string) (string, error) {
    if len(args) == 0 {
        return server.URL(), nil
    }
    return client.ValidateURL(args[0])
}

func postBody(cmd *cobra.Command) (*client.Body, error) {
    set := 0
    for _, name := range []string{"json", "data", "form"} {
        if cmd.Flags().Changed(name) {
            set++
        }
    }
    if set > 1 {
        return nil, fmt.Errorf("only one of --json, --data, --form may be given")
    }

    switch {
    case cmd.Flags().Changed("json"):
        return client.JSONBody(jsonData)
    case cmd.Flags().Changed("data"):
        return client.RawBody(rawData), nil
    case len(formArgs) > 0:
        pairs := make([]client.KvPair, 0, len(formArgs))
        for _, s := range formArgs {
            p, err := client.ParseKvPair(s)
            if err != nil {
                return nil, err
            }
            pairs = append(pairs, p)
        }
        return client.FormBody(pairs), nil
    }
    return nil, nil
}

func send(ctx context.Context, method, target string, body *client.Body) error {
    res, err := client.New().Do(ctx, method, target, body)
    if err != nil {
        return err
    }
    client.Print(color.Output, res)
    return nil
}

func init() {
    postCmd.Flags().StringVarP(&jsonData, "json", "j", "", "JSON request body")
    postCmd.Flags().StringVarP(&rawData, "data", "d", "", "Raw request body")
    postCmd.Flags().StringArrayVarP(&formArgs, "form", "f", nil, "Form field as key=value (repeatable)")

    jsonCmd.Flags().BoolVarP(&compact, "compact", "c", false, "Print on a single line")

    rootCmd.AddCommand(getCmd, postCmd, jsonCmd)
}

func main() {
    if err := rootCmd.ExecuteContext(context.Background()); err != nil {
        color.New(color.FgRed).Fprintf(os.Stderr, "❌ %v\n", err)
        os.Exit(1)
    }
}
