package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/firmata.go/pkg/bridge/mqtt"
	"github.com/robotalks/firmata.go/pkg/env"
	"github.com/robotalks/firmata.go/pkg/firmata"
	"github.com/robotalks/firmata.go/pkg/framework"
)

func init() {
	env.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := env.MustNewConfig()
	ch, err := conf.OpenChannel()
	if err != nil {
		glog.Exitln(err)
	}
	board := firmata.NewBoard(ch)

	queue, err := mqtt.NewQueueFromURL(conf.MQTTURL, conf.MQTTClientID())
	if err != nil {
		glog.Exitln(err)
	}
	if err := queue.Connect(); err != nil {
		glog.Exitf("connect %s: %v", conf.MQTTURL, err)
	}
	defer queue.Close()

	loop := framework.NewLoop().Add(mqtt.NewBridge(queue, board))
	err = framework.NewRunner().HandleSignals().Go(board, loop).Wait()
	if err != nil {
		glog.Errorf("exit: %v", err)
	}
}
