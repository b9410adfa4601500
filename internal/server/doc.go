// 版权所有 2025 Sailor Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 server 提供 Sailor 的运行时管理，包括 Socket Mode 事件分发与
健康检查/指标 HTTP 服务。

# 概述

本包包含两个管理器：SocketManager 消费 slack-go Socket Mode 事件流，
对每个信封执行 Ack 并把 Events API 回调与 block action 分发给
listeners 中的处理器；Manager 封装 net/http.Server，在独立端口
暴露 /health 与 Prometheus /metrics 端点。

# 核心类型

  - SocketManager：Socket Mode 分发器，持有 socketmode.Client 与
    各事件处理器，提供阻塞式 Run 方法。
  - Manager：HTTP 服务器管理器，提供 Start/Shutdown/Err/Addr
    等生命周期方法。

# 主要能力

  - 事件分发：app_home_opened 事件与 pick_a_provider 动作路由，
    未知类型仅记录 debug 日志后跳过。
  - 关联标识：每次分发生成 uuid，便于日志串联。
  - 非阻塞启动：HTTP 服务在后台 goroutine 中运行，错误经
    Err 通道传播。
  - 优雅关闭：Shutdown 在配置的超时内完成请求排空。
*/
package server
