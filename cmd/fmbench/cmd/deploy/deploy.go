package deploy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"opencsg.com/fmbench/common/config"
	"opencsg.com/fmbench/common/types"
	deploycomp "opencsg.com/fmbench/component/deploy"
)

var (
	experimentFile string
	roleArn        string
)

var Cmd = &cobra.Command{
	Use:   "deploy",
	Short: "deploy a model to a sagemaker endpoint and wait until it is in service",
}

func init() {
	Cmd.PersistentFlags().StringVarP(&experimentFile, "experiment", "e", "", "path of the experiment yaml file")
	Cmd.PersistentFlags().StringVar(&roleArn, "role", "", "execution role arn, defaults to the role of the experiment")
	_ = Cmd.MarkPersistentFlagRequired("experiment")

	Cmd.AddCommand(
		jumpStartCmd,
		tgiCmd,
	)
}

type deployFunc func(c deploycomp.DeployComponent, ctx context.Context, exp *types.Experiment, roleArn string) (*types.DeployResult, error)

var jumpStartCmd = &cobra.Command{
	Use:   "jumpstart",
	Short: "deploy a jumpstart model by model id and version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, deploycomp.DeployComponent.DeployJumpStart)
	},
}

var tgiCmd = &cobra.Command{
	Use:   "tgi",
	Short: "deploy a hugging face model on the text generation inference container",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, deploycomp.DeployComponent.DeployTGI)
	},
}

func run(cmd *cobra.Command, deploy deployFunc) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	exp, err := config.LoadExperiment(experimentFile)
	if err != nil {
		return err
	}
	c, err := deploycomp.NewDeployComponentFromConfig(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create deploy component: %w", err)
	}
	res, err := deploy(c, cmd.Context(), exp, roleArn)
	if err != nil {
		return err
	}
	out, err := json.Marshal(res)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
