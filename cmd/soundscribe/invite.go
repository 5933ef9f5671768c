package main

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
)

func newInviteCmd() *cobra.Command {
	var clientID string

	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Print the OAuth2 invite URL for the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID == "" {
				return fmt.Errorf("--client-id is required")
			}

			permissions := discordgo.PermissionViewChannel |
				discordgo.PermissionSendMessages |
				discordgo.PermissionVoiceConnect |
				discordgo.PermissionVoiceSpeak

			url := fmt.Sprintf(
				"https://discord.com/api/oauth2/authorize?client_id=%s&permissions=%d&scope=bot%%20applications.commands",
				clientID, permissions)
			fmt.Println(url)
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "Discord application client id")
	return cmd
}
