package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"

	"github.com/wattle/kubeclient/pkg/client"
	"github.com/wattle/kubeclient/pkg/resource"
)

// newApplyCmd creates the command for submitting a manifest.
func newApplyCmd() *cobra.Command {
	var filename string
	var replace bool

	cmd := &cobra.Command{
		Use:   "apply <resource> -f <manifest>",
		Short: "Create or replace a resource from a manifest file",
		Long: `Reads a YAML or JSON manifest and submits it to the server: POST to the
collection by default, or PUT to the named resource with --replace.

Examples:

  kubeclient apply pods -f pod.yaml
  kubeclient apply jobs -f job.yaml --replace --api-group batch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("reading manifest: %w", err)
			}

			// YAMLToJSON passes JSON input through unchanged.
			body, err := yaml.YAMLToJSON(data)
			if err != nil {
				return fmt.Errorf("converting manifest to JSON: %w", err)
			}

			var doc map[string]interface{}
			if err := json.Unmarshal(body, &doc); err != nil {
				return fmt.Errorf("manifest is not a JSON object: %w", err)
			}
			manifest := resource.NewUnstructured(doc)

			cluster, err := newCluster()
			if err != nil {
				return err
			}

			var res client.Result
			if replace {
				if manifest.Name() == "" {
					return fmt.Errorf("--replace requires metadata.name in the manifest")
				}
				res, err = cluster.Replace(cmd.Context(), resourcePath(args[0], manifest.Name()), body, nil)
			} else {
				res, err = cluster.Create(cmd.Context(), resourcePath(args[0], ""), body, nil)
			}
			if err != nil {
				return err
			}

			verb := "created"
			if replace {
				verb = "replaced"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s %s\n", args[0], displayName(res.Object), verb)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filename, "filename", "f", "", "manifest file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("filename")
	cmd.Flags().BoolVar(&replace, "replace", false,
		"replace the existing resource instead of creating a new one")
	return cmd
}
