package cmd

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the rosa version and build time.",
		Usage: "rosa version",
		Run: func(args []string) error {
			printVersion()
			return nil
		},
	})
}
