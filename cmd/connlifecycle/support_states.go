package main

import (
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/hibiken/asynq"
	"github.com/rmorlok/connlifecycle/internal/core/iface"
	"github.com/spf13/cobra"
)

type supportStateRunJson struct {
	UnsupportedCount      int         `json:"unsupported_count"`
	DeprecatedCount       int         `json:"deprecated_count"`
	SupportedCount        int         `json:"supported_count"`
	DisabledConnectionIds []uuid.UUID `json:"disabled_connection_ids"`
	Failures              []string    `json:"failures,omitempty"`
}

func supportStateRunToJson(r *iface.SupportStateRunResult) supportStateRunJson {
	j := supportStateRunJson{
		UnsupportedCount:      r.UnsupportedCount,
		DeprecatedCount:       r.DeprecatedCount,
		SupportedCount:        r.SupportedCount,
		DisabledConnectionIds: r.DisabledConnectionIds,
	}

	if j.DisabledConnectionIds == nil {
		j.DisabledConnectionIds = []uuid.UUID{}
	}

	if r.Failures != nil {
		if merr, ok := r.Failures.(*multierror.Error); ok {
			for _, e := range merr.Errors {
				j.Failures = append(j.Failures, e.Error())
			}
		} else {
			j.Failures = []string{r.Failures.Error()}
		}
	}

	return j
}

type taskInfoJson struct {
	Id    string `json:"id"`
	Queue string `json:"queue"`
	Type  string `json:"type"`
}

func newTaskInfoJson(info *asynq.TaskInfo) taskInfoJson {
	return taskInfoJson{
		Id:    info.ID,
		Queue: info.Queue,
		Type:  info.Type,
	}
}

func cmdSupportStates(c *cli) *cobra.Command {
	var enqueue bool

	cmd := &cobra.Command{
		Use:   "support-states",
		Short: "Recompute the support state of every connector version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dm := c.dependencies("support-states")
			defer dm.Close()
			svc := dm.GetCoreService()

			if enqueue {
				info, err := svc.EnqueueUpdateSupportStates(cmd.Context())
				if err != nil {
					return err
				}
				return emit(cmd, newTaskInfoJson(info))
			}

			result, err := svc.UpdateSupportStates(cmd.Context())
			if err != nil {
				return err
			}

			return emit(cmd, supportStateRunToJson(result))
		},
	}

	cmd.Flags().BoolVar(&enqueue, "enqueue", false, "queue the run on the worker instead of running it here")

	return cmd
}
