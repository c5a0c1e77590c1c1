package cli

import (
	"github.com/erkineren/pipeline-notify/internal/bot"
	"github.com/erkineren/pipeline-notify/internal/cluster"
	"github.com/erkineren/pipeline-notify/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newSuccessCmd(a *app) *cobra.Command {
	var namespace string

	cmd := &cobra.Command{
		Use:   "success",
		Short: "Notify the chat that the deployment is ready, with its pods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if namespace != "" {
				cfg.Cluster.Namespace = namespace
			}
			if err := cfg.ForSuccess(); err != nil {
				return err
			}

			b, err := bot.New(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.APIEndpoint, cfg.HTTPTimeout)
			if err != nil {
				return err
			}

			lister, err := newPodLister(cfg)
			if err != nil {
				return err
			}

			pods, err := lister.ListPods(cmd.Context(), cfg.Cluster.Namespace)
			if err != nil {
				return err
			}
			log.WithField("namespace", cfg.Cluster.Namespace).Debug("Collected pod snapshot")

			return b.Notify(cmd.Context(), bot.SuccessMessage(pods))
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Namespace whose pods are listed; overrides KUBE_NAMESPACE")

	return cmd
}

func newPodLister(cfg *config.Config) (cluster.PodLister, error) {
	cc := cfg.Cluster
	if cc.Source == config.PodsSourceAPI {
		return cluster.NewAPI(cc.Kubeconfig, cfg.HTTPTimeout)
	}
	return cluster.NewKubectl(cc.Kubectl, cc.Sudo), nil
}
