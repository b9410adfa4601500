// Copyright (c) Sailor Authors.
// Licensed under the MIT License.

/*
Package main 提供 Sailor 机器人服务端程序入口。

# 概述

cmd/sailor 是 Sailor 的可执行入口。机器人通过 Slack Socket Mode
接收 app_home_opened 事件与 pick_a_provider 交互动作，为每个用户
渲染 Home Tab 的 AI Provider 下拉选择器，并把选择持久化到 Redis。
程序支持 YAML 配置文件加载、结构化日志（zap）、Prometheus 指标
采集与 OpenTelemetry 遥测。

# 主要能力

  - 子命令：serve（启动服务）、version、health
  - Socket Mode 事件循环与监听器分发
  - 健康检查 / 指标服务器：独立端口暴露 /health 与 /metrics
  - 优雅关闭：信号监听 → 停止事件循环 → 关闭 HTTP → 释放 Redis
  - 构建注入：Version、BuildTime、GitCommit 通过 ldflags 设置
*/
package main
