package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emberloop/ember/internal/core/entity"
	"github.com/emberloop/ember/internal/data"
	"github.com/emberloop/ember/internal/render/headless"
	"github.com/emberloop/ember/internal/world"
)

func newCheckSceneCmd() *cobra.Command {
	var scriptsDir string
	cmd := &cobra.Command{
		Use:   "check-scene <scene.yaml>",
		Short: "Validate a scene file and its scripts without opening a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkScene(args[0], scriptsDir)
		},
	}
	cmd.Flags().StringVar(&scriptsDir, "scripts", "scripts", "directory scripted entities are resolved against")
	return cmd
}

func checkScene(path, scriptsDir string) error {
	scene, err := data.LoadScene(path)
	if err != nil {
		return err
	}
	b := world.NewBuilder()
	ents, err := scene.Apply(b, scriptsDir, zap.NewNop())
	if err != nil {
		return fmt.Errorf("scene %s: %w", path, err)
	}
	defer data.CloseEntities(ents)

	w, err := b.Build(headless.NewDevice(), zap.NewNop())
	if err != nil {
		return fmt.Errorf("scene %s: %w", path, err)
	}

	printSection(scene.Name)
	printStat("entities declared", strconv.Itoa(len(ents)))
	printStat("entities admitted", strconv.Itoa(w.Len()))
	printStat("duplication", w.DuplicationBehaviour().String())
	printStat("digest", scene.Digest[:16])
	w.Each(func(c *entity.Container) {
		printStat(c.Tag(), c.Configuration().Frequency.String())
	})
	printOK("scene is valid")
	return nil
}
