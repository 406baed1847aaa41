package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/yiplee/structs"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "print the effective config",
	Run: func(cmd *cobra.Command, args []string) {
		c := provideConfig()

		// db section goes through structs so credentials can be masked by key
		dbc := structs.Map(c.DB)
		for _, key := range []string{"password", "pass"} {
			if _, ok := dbc[key]; ok {
				dbc[key] = "******"
			}
		}

		data, err := json.Marshal(c)
		if err != nil {
			cmd.PrintErrln("marshal config:", err)
			return
		}

		var values map[string]interface{}
		if err := json.Unmarshal(data, &values); err != nil {
			cmd.PrintErrln("unmarshal config:", err)
			return
		}
		values["db"] = dbc

		data, _ = json.MarshalIndent(values, "", "  ")
		cmd.Println(string(data))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
